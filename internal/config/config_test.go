package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autentke/autentke/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Autentke", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.True(t, decimal.RequireFromString("2.5").Equal(cfg.Shop.DefaultMarkup))
	assert.Equal(t, int64(500000), cfg.DefaultGoalCents())
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.Shop.PromoDiscount))
	assert.Equal(t, 5, cfg.Shop.TopBuyers)
	assert.Equal(t, "postgres://postgres:@localhost:5432/autentke?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHOP_DEFAULT_GOAL", "1234.56")
	t.Setenv("SHOP_DEFAULT_MARKUP", "1.8")
	t.Setenv("SHOP_PROMO_DISCOUNT", "0")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Shop.PromoDiscount.IsZero())

	assert.Equal(t, int64(123456), cfg.DefaultGoalCents())
	assert.True(t, decimal.RequireFromString("1.8").Equal(cfg.Shop.DefaultMarkup))
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.ConnectionString())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{
			name:   "Valid",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "ZeroMarkup",
			mutate:  func(c *config.Config) { c.Shop.DefaultMarkup = decimal.Zero },
			wantErr: true,
		},
		{
			name:    "PromoAbove100",
			mutate:  func(c *config.Config) { c.Shop.PromoDiscount = decimal.NewFromInt(150) },
			wantErr: true,
		},
		{
			name:    "BadPort",
			mutate:  func(c *config.Config) { c.App.Port = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c config.Config
			c.App.Port = 8080
			c.Shop.DefaultMarkup = decimal.RequireFromString("2.5")
			c.Shop.PromoDiscount = decimal.NewFromInt(10)
			c.Shop.DefaultGoal = decimal.NewFromInt(5000)
			c.Shop.TopBuyers = 5

			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}
