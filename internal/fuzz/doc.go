// Package fuzztests houses Go fuzz harnesses for the template pipeline
// (source -> lexer -> trim -> codegen). Its goal is to smoke test robustness
// and guard against panics on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через FileSet, токенизатор,
// обрезку пробелов и генерацию кода, проверяя базовые свойства.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/trim, internal/codegen.

package fuzztests
