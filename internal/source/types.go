package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks files whose byte order mark was stripped on load.
	FileHadBOM
	// FileDecoded marks files that were transcoded to UTF-8 on load (UTF-16 input).
	FileDecoded
)

// File captures metadata and content for a single template file.
// Content is always UTF-8; Encoding remembers what it was on disk.
type File struct {
	ID       FileID
	Path     string
	Content  []byte
	LineIdx  []uint32
	Hash     [32]byte
	Flags    FileFlags
	Encoding Encoding
}

// Text returns the file content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
