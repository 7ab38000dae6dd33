package logging

import (
	"context"

	"go.uber.org/fx"
)

type Params struct {
	fx.In
	Lifecycle fx.Lifecycle
	Options   []Option `group:"logger_options"`
}

func provideLogger(p Params) (*Logger, error) {
	l, err := New(p.Options...)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			_ = l.Sync()
			return nil
		},
	})
	return l, nil
}

// AsOption contributes a logger option to the "logger_options" group.
func AsOption(opt Option) fx.Option {
	return fx.Provide(fx.Annotate(
		func() Option { return opt },
		fx.ResultTags(`group:"logger_options"`),
	))
}

func Module() fx.Option {
	return fx.Options(
		fx.Provide(provideLogger),
	)
}
