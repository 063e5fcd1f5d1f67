package main

import "notedesk/internal/app"

// @title           Notedesk API
// @version         1.0
// @description     Notes backend with OTP-gated login and password reset.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
