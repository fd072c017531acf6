// Package format turns Tolk source text into its canonical layout.
//
// Назначение: разбор, привязка комментариев, печать дерева в doc.Doc и
// рендер под заданную ширину; поддержка fmt-ignore, форматирования диапазона
// и сортировки импортов.
// Не делает: IO, обход файлов, кэш (это internal/driver).
// Зависимости: internal/parser, internal/comments, internal/doc, internal/imports,
// internal/trace, internal/observ.
package format
