package bootstrap

import (
	"dental-clinic-api/internal/handler/middleware"
	"dental-clinic-api/internal/pkg/config"
	"dental-clinic-api/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewTokenValidator,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewTokenValidator(cfg config.Config) *jwt.Validator {
	return jwt.NewValidator(cfg.JWT.Secret)
}
