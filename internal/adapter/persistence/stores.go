package persistence

import (
	"context"
	"fmt"

	"ritual_desk/internal/adapter/persistence/repository"
	"ritual_desk/internal/adapter/persistence/repository/memory"
	"ritual_desk/internal/infrastructure/config"
	"ritual_desk/internal/infrastructure/database"
	"ritual_desk/internal/usecase/interfaces"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Stores groups the repositories of one storage driver.
type Stores struct {
	Quotes   interfaces.IPriceQuoteRepository
	Requests interfaces.IServiceRequestRepository
	Payments interfaces.IPaymentIntentRepository
}

// Open builds the repositories for cfg.Driver. The memory driver keeps
// everything in process and is meant for local runs.
func Open(ctx context.Context, cfg config.StorageConfig) (Stores, error) {
	switch cfg.Driver {
	case DriverMemory:
		return Stores{
			Quotes:   memory.NewPriceQuoteRepository(),
			Requests: memory.NewServiceRequestRepository(),
			Payments: memory.NewPaymentIntentRepository(),
		}, nil
	case DriverDynamoDB, "":
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return Stores{}, fmt.Errorf("connect dynamodb: %w", err)
		}
		return Stores{
			Quotes:   repository.NewPriceQuoteDynamoRepository(ddb, cfg.QuotesTable),
			Requests: repository.NewServiceRequestDynamoRepository(ddb, cfg.ServiceRequestsTable),
			Payments: repository.NewPaymentIntentDynamoRepository(ddb, cfg.PaymentsTable),
		}, nil
	default:
		return Stores{}, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
