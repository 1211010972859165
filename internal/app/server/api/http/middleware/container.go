package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container хранит общий набор мидлварей, который получает каждая группа маршрутов.
type Container struct {
	base huma.Middlewares
}

// NewContainer создает контейнер с базовыми мидлварями
func NewContainer(base ...func(ctx huma.Context, next func(huma.Context))) *Container {
	return &Container{base: append(huma.Middlewares{}, base...)}
}

// With возвращает копию базового набора, дополненную extra.
// Изменения результата не затрагивают контейнер.
func (mc *Container) With(extra ...func(ctx huma.Context, next func(huma.Context))) huma.Middlewares {
	out := make(huma.Middlewares, 0, len(mc.base)+len(extra))
	out = append(out, mc.base...)
	return append(out, extra...)
}
