// Package fuzztests houses Go fuzz harnesses for the hsfront front end
// (source -> lexer -> layout -> parser). Their goal is to guard against
// panics, hangs and broken tree invariants on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// раскладку и парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/layout,
// internal/parser, internal/diag, internal/testkit.

package fuzztests
