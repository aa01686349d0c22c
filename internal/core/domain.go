package core

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

type (
	TransactionType string

	// User is the minimal profile snapshot kept with a session.
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	AuthResponse struct {
		Token     string `json:"token"`
		TokenType string `json:"tokenType,omitempty"`
		Username  string `json:"username"`
		Email     string `json:"email"`
	}

	Category struct {
		ID          int64           `json:"id"`
		Name        string          `json:"name"`
		Type        TransactionType `json:"type"`
		Description string          `json:"description,omitempty"`
		CreatedAt   Timestamp       `json:"createdAt"`
		UpdatedAt   Timestamp       `json:"updatedAt"`
	}

	CategoryInput struct {
		Name        string          `json:"name"`
		Type        TransactionType `json:"type"`
		Description string          `json:"description"`
	}

	Transaction struct {
		ID           int64           `json:"id"`
		Type         TransactionType `json:"type"`
		Amount       Money           `json:"amount"`
		Date         Date            `json:"date"`
		Description  string          `json:"description,omitempty"`
		CategoryID   int64           `json:"categoryId"`
		CategoryName string          `json:"categoryName"`
		CreatedAt    Timestamp       `json:"createdAt"`
		UpdatedAt    Timestamp       `json:"updatedAt"`
	}

	TransactionInput struct {
		CategoryID  int64           `json:"categoryId"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Date        Date            `json:"date"`
		Description string          `json:"description"`
	}

	// TransactionFilter narrows a transaction listing. Zero values are not sent.
	TransactionFilter struct {
		Range      DateRange
		Type       TransactionType
		CategoryID int64
	}

	Profile struct {
		ID            int64     `json:"id"`
		Username      string    `json:"username"`
		Firstname     string    `json:"firstname"`
		Middlename    string    `json:"middlename"`
		Lastname      string    `json:"lastname"`
		Email         string    `json:"email"`
		PhoneNumber   string    `json:"phoneNumber"`
		Street        string    `json:"street"`
		City          string    `json:"city"`
		State         string    `json:"state"`
		Country       string    `json:"country"`
		EmailVerified bool      `json:"emailVerified"`
		CreatedAt     Timestamp `json:"createdAt"`
		UpdatedAt     Timestamp `json:"updatedAt"`
	}

	// ProfileUpdate is sent as-is; nil optional fields are encoded as null.
	ProfileUpdate struct {
		Firstname   string  `json:"firstname"`
		Middlename  *string `json:"middlename"`
		Lastname    string  `json:"lastname"`
		Email       string  `json:"email"`
		PhoneNumber *string `json:"phoneNumber"`
		Street      *string `json:"street"`
		City        *string `json:"city"`
		State       *string `json:"state"`
		Country     *string `json:"country"`
	}

	RegisterRequest struct {
		Username        string `json:"username"`
		Firstname       string `json:"firstname"`
		Middlename      string `json:"middlename"`
		Lastname        string `json:"lastname"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"-"`
		PhoneNumber     string `json:"phoneNumber"`
		Street          string `json:"street"`
		City            string `json:"city"`
		State           string `json:"state"`
		Country         string `json:"country"`
	}

	// PasswordReset carries the second step of the reset flow.
	PasswordReset struct {
		Email           string `json:"email"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
)

// Form messages shown next to the offending field.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgIncompleteOTP    = "Please enter the complete 6-digit OTP"
	MsgSelectCategory   = "Please select a category"
	MsgFixForm          = "Please fix the errors in the form"
)

const minPasswordLength = 6

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// FieldErrors maps form field names to user-facing messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// orNil returns nil when no field failed, so callers can return it as error.
func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType normalises user input; empty input yields "".
func ParseTransactionType(s string) (TransactionType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	t := TransactionType(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// ValidateOTP checks the registration and reset passcode shape.
func ValidateOTP(otp string) error {
	if !otpPattern.MatchString(strings.TrimSpace(otp)) {
		return errors.New(MsgIncompleteOTP)
	}
	return nil
}

func validatePasswordPair(fe FieldErrors, field, password, confirm string) {
	if password != confirm {
		fe["confirmPassword"] = MsgPasswordMismatch
	}
	if len(password) < minPasswordLength {
		fe[field] = MsgPasswordTooShort
	}
}

// Validate runs the checks done before any registration request is sent.
func (r RegisterRequest) Validate() error {
	fe := FieldErrors{}
	validatePasswordPair(fe, "password", r.Password, r.ConfirmPassword)
	if !strings.Contains(r.Email, "@") {
		fe["email"] = MsgInvalidEmail
	}
	return fe.orNil()
}

func (p PasswordReset) Validate() error {
	fe := FieldErrors{}
	validatePasswordPair(fe, "newPassword", p.NewPassword, p.ConfirmPassword)
	return fe.orNil()
}

func (c CategoryInput) Validate() error {
	fe := FieldErrors{}
	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		fe["name"] = "Category name is required"
	case len(name) > 50:
		fe["name"] = "Category name cannot exceed 50 characters"
	}
	if !c.Type.IsValid() {
		fe["type"] = "Category type is required"
	}
	if len(c.Description) > 500 {
		fe["description"] = "Description cannot exceed 500 characters"
	}
	return fe.orNil()
}

func (t TransactionInput) Validate() error {
	fe := FieldErrors{}
	if t.CategoryID <= 0 {
		fe["categoryId"] = MsgSelectCategory
	}
	if !t.Type.IsValid() {
		fe["type"] = "Transaction type is required"
	}
	if t.Amount.Cents <= 0 {
		fe["amount"] = "Amount must be greater than zero"
	}
	if t.Date.IsZero() {
		fe["date"] = "Transaction date is required"
	}
	if len(t.Description) > 1000 {
		fe["description"] = "Description cannot exceed 1000 characters"
	}
	return fe.orNil()
}

func (p ProfileUpdate) Validate() error {
	fe := FieldErrors{}
	if strings.TrimSpace(p.Firstname) == "" {
		fe["firstname"] = "First name is required"
	}
	if strings.TrimSpace(p.Lastname) == "" {
		fe["lastname"] = "Last name is required"
	}
	if p.PhoneNumber != nil && !phonePattern.MatchString(*p.PhoneNumber) {
		fe["phoneNumber"] = "Invalid phone number format"
	}
	return fe.orNil()
}

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{0,20}$`)

// Query renders the filter as backend query parameters.
func (f TransactionFilter) Query() map[string]string {
	q := map[string]string{}
	if !f.Range.Start.IsZero() {
		q["startDate"] = f.Range.Start.String()
	}
	if !f.Range.End.IsZero() {
		q["endDate"] = f.Range.End.String()
	}
	if f.Type != "" {
		q["type"] = string(f.Type)
	}
	if f.CategoryID > 0 {
		q["categoryId"] = strconv.FormatInt(f.CategoryID, 10)
	}
	return q
}
