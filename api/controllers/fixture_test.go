package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/internal/catalog"
	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/internal/payments"
	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
)

type fixture struct {
	catalog  catalog.Service
	ledger   ledger.Service
	payments payments.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	catalogSvc, err := catalog.NewService(catalog.NewMemoryRepository(), fixedClock)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	for _, in := range []catalog.CreateCourseInput{
		{ID: "VR", Name: "Verbal Reasoning", Price: 999, Enrolled: 1250},
		{ID: "TAT", Name: "TAT Course", Price: 1499, Enrolled: 890},
	} {
		if _, err := catalogSvc.Create(ctx, in); err != nil {
			t.Fatalf("seed course %s: %v", in.ID, err)
		}
	}

	ledgerSvc, err := ledger.NewService(ledger.ServiceParams{
		Store:        ledger.NewMemoryStore(),
		Catalog:      catalogSvc,
		GracePeriod:  72 * time.Hour,
		EnforcePrice: true,
		Clock:        fixedClock,
	})
	if err != nil {
		t.Fatalf("ledger service: %v", err)
	}

	paymentsSvc, err := payments.NewService(payments.ServiceParams{
		Catalog:      catalogSvc,
		Ledger:       ledgerSvc,
		Config:       config.PaymentsConfig{UPIID: "ssbcompass@axl", PayeeName: "SSB COMPASS"},
		EnforcePrice: true,
		Clock:        fixedClock,
	})
	if err != nil {
		t.Fatalf("payments service: %v", err)
	}

	return &fixture{catalog: catalogSvc, ledger: ledgerSvc, payments: paymentsSvc}
}
