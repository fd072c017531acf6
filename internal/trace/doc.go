// Package trace records structured events of a tolkfmt run.
//
// Назначение: фазы форматирования (parse, bind, print, render), события
// по файлам и по узлам (fallback-привязка комментариев, неотданные комментарии).
// Не делает: метрики и профилирование; длительности фаз считает internal/observ.
// Зависимости: только стандартная библиотека.
//
// # Usage
//
//	tolkfmt --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring buffer only, dumped when a file fails
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including node events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
