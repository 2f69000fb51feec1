// Package docs provides Swagger documentation for the API.
package docs

// @title Outreach Campaign Backend API
// @version 1.0
// @description API for multi-channel outreach campaigns: scheduled voice calls, SMS and email waves
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://www.outreachdesk.io/support
// @contact.email support@outreachdesk.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared secret for scheduler triggers and provider webhooks
