//go:build !protogen

package main

import (
	"log/slog"

	"github.com/sadia-akter/trimly/services/booking-service/internal/policy"
	"github.com/sadia-akter/trimly/services/booking-service/internal/scheduling"
)

func newSchedulingProvider(_ *slog.Logger, baseURL string) scheduling.Provider {
	return scheduling.NewHTTPProvider(baseURL)
}

func newPolicyPrimary(_ *slog.Logger, baseURL string) policy.Provider {
	return policy.NewHTTPProvider(baseURL)
}
