package Controllers

import (
	"log"
	"os"
	"time"

	"Attendance/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks the request against the env-configured operator account
// (ADMIN_USER plus a bcrypt ADMIN_PASSWORD_HASH) and issues the JWT
// cookie the Verify middleware expects. There is no user table.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUser == "" || adminHash == "" {
		log.Println("login rejected: ADMIN_USER/ADMIN_PASSWORD_HASH not configured")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Login is not configured on this server",
		})
	}

	if req.Username != adminUser ||
		bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Incorrect username or password",
		})
	}

	claims := middleware.Claims{
		Permission: 4,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    req.Username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	if err != nil {
		log.Println(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log in",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(time.Hour * 24),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"message": "Logged In Successfully",
	})
}

// ValidateToken reports whether the jwt cookie is still good.
func ValidateToken(c *fiber.Ctx) error {
	cookie := c.Cookies("jwt")
	if cookie == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"valid": false,
		})
	}
	token, err := jwt.ParseWithClaims(cookie, &middleware.Claims{}, func(t *jwt.Token) (interface{}, error) {
		return middleware.SecretKey(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"valid": false,
		})
	}
	return c.JSON(fiber.Map{
		"valid": true,
	})
}

// Logout expires the jwt cookie.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{
		"message": "Logged Out Successfully",
	})
}
