package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New はミドルウェアを組んだechoインスタンスを返す。
// ルートは各Handler側のRegisterRoutesで登録する。
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
