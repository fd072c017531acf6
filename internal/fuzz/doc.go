// Package fuzztests houses Go fuzz harnesses for the tolkfmt pipeline
// (source -> lexer -> parser -> formatter). They guard against panics and
// hangs on arbitrary inputs and check that formatting a parsable file
// yields a parsable, stable result that keeps every comment.
//
// Назначение: fuzz-обработчики поверх source.NewFile, лексера, парсера и format.Format.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/format,
// internal/testkit.
package fuzztests
