// Package doc is the layout algebra the printer builds and the renderer that
// turns it into text under a width budget.
//
// Назначение: описать намерение раскладки (группы, мягкие и жёсткие переносы,
// отступы, отложенные хвосты строк) и выбрать переносы по ширине.
// Не делает: ничего не знает о синтаксисе Tolk и о комментариях.
// Зависимости: github.com/mattn/go-runewidth для ширины строки.
package doc
