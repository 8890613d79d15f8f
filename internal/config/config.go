package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	StripeSecretKey string // Stripeのシークレットキー
	GCSBucket       string // 商品画像のバケット

	DeliveryFee int64 // 固定配送料（セントス、既定400 = R$4.00）
}

const defaultDeliveryFee = 400

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:            os.Getenv("PORT"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		GCSBucket:       os.Getenv("GCS_BUCKET"),
		DeliveryFee:     defaultDeliveryFee,
	}

	if v := os.Getenv("DELIVERY_FEE"); v != "" {
		fee, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("DELIVERY_FEE must be number: %w", err)
		}
		if fee < 0 {
			return Config{}, fmt.Errorf("DELIVERY_FEE must be >= 0")
		}
		cfg.DeliveryFee = fee
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.GCSBucket == "" {
		return Config{}, fmt.Errorf("GCS_BUCKET is required")
	}

	return cfg, nil
}
