package http

// User-facing notifications and fallbacks, used when the backend gives no
// message of its own.
const (
	msgLoginSuccess    = "Login successful! Welcome back."
	msgLoggedOut       = "Logged out successfully"
	msgSessionExpired  = "Your session has expired. Please log in again."
	msgTooManyAttempts = "Too many attempts. Please try again in a minute."
	msgInvalidRequest  = "Invalid request"
	msgPageNotFound    = "Page not found"

	msgOTPSent          = "OTP sent to your email. Please verify to complete registration."
	msgRegistrationDone = "Registration completed successfully! You can now login."
	msgOTPResent        = "New OTP sent to your email"

	msgResetOTPSent     = "Password reset OTP sent to your email"
	msgResetOTPFailed   = "Failed to send OTP. Please check your email and try again."
	msgResetOTPVerified = "OTP verified successfully"
	msgResetOTPInvalid  = "Invalid or expired OTP. Please try again."
	msgResetDone        = "Password reset successful! You can now login."
	msgResetFailed      = "Failed to reset password. Please try again."
	msgResendFailed     = "Failed to resend OTP. Please try again."

	msgDashboardFailed = "Failed to load dashboard data"

	msgTransactionsFailed = "Failed to load transactions"
	msgInvalidFilter      = "Some filters were invalid and have been ignored"
	msgTransactionSave    = "Failed to save transaction"
	msgTransactionDelete  = "Failed to delete transaction"
	msgTransactionAdded   = "Transaction added"
	msgTransactionUpdated = "Transaction updated"
	msgTransactionDeleted = "Transaction deleted"

	msgCategoriesFailed = "Failed to load categories"
	msgCategoryAction   = "Action failed"
	msgCategoryDelete   = "Failed to delete category"
	msgCategoryCreated  = "Category created successfully"
	msgCategoryUpdated  = "Category updated successfully"
	msgCategoryDeleted  = "Category deleted"

	msgReportsFailed = "Failed to load reports"
	msgNoReportData  = "No data available to download"
	msgInvalidRange  = "Please choose a valid date range"

	msgProfileFailed  = "Failed to load profile"
	msgProfileUpdate  = "Failed to update profile"
	msgProfileUpdated = "Profile updated successfully"
)
