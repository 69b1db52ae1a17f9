package commerce7

import "go.uber.org/fx"

var Module = fx.Module("commerce7",
	fx.Provide(NewClient),
)
