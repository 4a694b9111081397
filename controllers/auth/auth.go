package authController

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"oakridge/config"
	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// oauthProfile is the normalized identity returned by a provider's userinfo endpoint
type oauthProfile struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// fetchUserInfo calls the provider's userinfo endpoint with the supplied
// access token and normalizes the response.
func fetchUserInfo(provider, accessToken string) (*oauthProfile, error) {
	var url string
	switch provider {
	case "google":
		url = config.AppConfig.GoogleUserInfoURL
	case "github":
		url = config.AppConfig.GithubUserInfoURL
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+accessToken).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode())
	}

	switch provider {
	case "google":
		var body struct {
			ID      string `json:"id"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, err
		}
		return &oauthProfile{Subject: body.ID, Email: body.Email, Name: body.Name, AvatarURL: body.Picture}, nil
	default: // github
		var body struct {
			ID        int64  `json:"id"`
			Login     string `json:"login"`
			Name      string `json:"name"`
			Email     string `json:"email"`
			AvatarURL string `json:"avatar_url"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, err
		}
		name := body.Name
		if name == "" {
			name = body.Login
		}
		return &oauthProfile{Subject: strconv.FormatInt(body.ID, 10), Email: body.Email, Name: name, AvatarURL: body.AvatarURL}, nil
	}
}

// OAuthLogin exchanges a provider access token for an application JWT. First
// login creates the user with the PENDING role; membership is granted
// through the application review flow.
func OAuthLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOAuthLogin").(*struct {
		Provider    string `json:"provider" validate:"required,oneof=google github"`
		AccessToken string `json:"access_token" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	profile, err := fetchUserInfo(reqData.Provider, reqData.AccessToken)
	if err != nil {
		log.Printf("OAuth userinfo lookup failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Could not verify identity with provider!", nil)
	}
	if profile.Subject == "" || profile.Email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Provider did not return a usable identity!", nil)
	}

	db := database.Database.Db

	var user models.User
	err = db.Where("oauth_provider = ? AND oauth_subject = ? AND is_deleted = ?",
		reqData.Provider, profile.Subject, false).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			Name:          profile.Name,
			Email:         profile.Email,
			AvatarURL:     profile.AvatarURL,
			Role:          models.RolePending,
			OAuthProvider: reqData.Provider,
			OAuthSubject:  profile.Subject,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error creating user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign in!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign in!", nil)
	} else {
		// Refresh profile fields the provider owns
		now := time.Now()
		db.Model(&user).Updates(map[string]interface{}{
			"name":       profile.Name,
			"avatar_url": profile.AvatarURL,
			"last_login": &now,
		})
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign in!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signed in successfully!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// AdminLogin authenticates the bootstrap admin account with email and password.
func AdminLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAdminLogin").(*struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND role = ? AND is_deleted = ?",
		reqData.Email, models.RoleAdmin, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)) != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	now := time.Now()
	database.Database.Db.Model(&user).Update("last_login", &now)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign in!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signed in successfully!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// SeedAdminUser creates the bootstrap admin account if it does not exist.
// Skipped when ADMIN_PASSWORD is unset.
func SeedAdminUser(db *gorm.DB) error {
	email := config.AppConfig.AdminEmail
	password := config.AppConfig.AdminPassword
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed.")
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Portal Admin",
		Email:    email,
		Role:     models.RoleAdmin,
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", email)
	return nil
}
