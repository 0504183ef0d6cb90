package components

import (
	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/infra/dispatch"
	repo_impl "transfer-portal/internal/infra/repository"
	"transfer-portal/internal/usecase"
	"transfer-portal/internal/usecase/commands"
	"transfer-portal/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReader)),
			fx.As(new(booking.CodeChecker)),
		),
		fx.Annotate(
			repo_impl.NewRideRepository,
			fx.As(new(commands.RideRepository)),
			fx.As(new(queries.RideReader)),
		),
		fx.Annotate(
			repo_impl.NewPolicyRepository,
			fx.As(new(commands.PolicyRepository)),
			fx.As(new(queries.PolicyReader)),
		),
		fx.Annotate(
			repo_impl.NewSubscriptionRepository,
			fx.As(new(commands.SubscriptionRepository)),
			fx.As(new(queries.SubscriptionReader)),
			fx.As(new(dispatch.SubscriptionStore)),
		),
		fx.Annotate(
			repo_impl.NewDeliveryRepository,
			fx.As(new(queries.DeliveryReader)),
			fx.As(new(dispatch.DeliveryStore)),
		),
	),
)
