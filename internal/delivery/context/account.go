package context

import (
	"podium/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyAccount is the echo.Context key holding the authenticated account.
const KeyAccount ContextKey = "account"

// SetAccount stores the authenticated account in echo.Context.
func SetAccount(c echo.Context, account *entity.Account) {
	c.Set(string(KeyAccount), account)
}

// GetAccount returns the authenticated account, if the request passed the session gate.
func GetAccount(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(string(KeyAccount)).(*entity.Account)

	return account, ok && account != nil
}
