package main

import (
	"context"
	"log"
	"time"

	"bambu/internal/cart"
	"bambu/internal/config"
	"bambu/internal/domain/model"
	"bambu/internal/handler"
	"bambu/internal/infra/db"
	"bambu/internal/infra/payment"
	infraRepo "bambu/internal/infra/repository"
	"bambu/internal/infra/storage"
	"bambu/internal/server"
	"bambu/internal/usecase"
	"bambu/internal/validator"

	gcs "cloud.google.com/go/storage"
	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, isSeller bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":    userID,
		"seller": isSeller,
		"iat":    now.Unix(),
		"exp":    expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
		&model.CartLine{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	cartLineRepo := infraRepo.NewCartLineGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部コラボレータ（Stripe・GCS）
	stripeIssuer, err := payment.NewStripeIssuer(cfg.StripeSecretKey)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	gcsClient, err := gcs.NewClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	imageStore, err := storage.NewGCSImageStore(gcsClient, cfg.GCSBucket)
	if err != nil {
		log.Fatal(err)
	}

	//カート（ユーザーごと、永続化つき）
	cartManager := cart.NewManager(cartLineRepo)

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, validator.NewAuthValidator(userRepo), issuer)
	productUC := usecase.NewProductUsecase(productRepo, imageStore)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	cartUC := usecase.NewCartUsecase(cartManager, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartManager, addressRepo, stripeIssuer, txManager, cfg.DeliveryFee)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, stripeIssuer)

	//Handler生成とルーティング
	e := server.New()

	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewProductHandler(productUC).RegisterRoutes(e)
	handler.NewSellerProductHandler(productUC).RegisterRoutes(e, cfg)
	handler.NewAddressHandler(addressUC).RegisterRoutes(e, cfg)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, cfg)
	handler.NewCheckoutHandler(checkoutUC).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, cfg)
	handler.NewSellerOrderHandler(orderUC).RegisterRoutes(e, cfg)

	//Server起動
	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}
