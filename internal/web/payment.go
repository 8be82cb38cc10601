package web

import "github.com/gofiber/fiber/v2"

// paymentReturn watches every request for the provider's ?payment=success
// return parameter. On observing it the payment flag is recorded, the session
// is forced to the download page, and the redirect strips the parameter from
// the visible URL so a refresh cannot re-trigger the transition.
func (a *App) paymentReturn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("payment") != "success" {
			return c.Next()
		}
		a.Flow.CompletePayment(c.UserContext())
		a.Logger.Info("payment return observed, unlocking downloads")
		return c.Redirect("/download", fiber.StatusFound)
	}
}
