package source

import (
	"path/filepath"
	"strings"
)

func decodeContent(raw []byte) ([]byte, FileFlags, Encoding, error) {
	enc, ok := DetectEncoding(raw)
	if !ok {
		return raw, 0, UTF8, nil
	}
	content, err := enc.Decode(raw)
	if err != nil {
		return nil, 0, Encoding{}, err
	}
	flags := FileHadBOM
	if enc != UTF8BOM {
		flags |= FileDecoded
	}
	return content, flags, enc, nil
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: находим количество '\n' строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // 0-based
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

// RelativePath reports path relative to baseDir, falling back to the
// normalized absolute path when it lies outside baseDir.
func RelativePath(path, baseDir string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return normalizePath(path)
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs)
	}
	return normalizePath(rel)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
