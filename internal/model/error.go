package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeMissingField          = "MISSING_FIELD"
	ErrCodeItemNotFound          = "ITEM_NOT_FOUND"
	ErrCodeCategoryNotFound      = "CATEGORY_NOT_FOUND"
	ErrCodeEmptyCart             = "EMPTY_CART"
	ErrCodeMissingCustomerName   = "MISSING_CUSTOMER_NAME"
	ErrCodeMissingDeliveryDetail = "MISSING_DELIVERY_DETAIL"
	ErrCodeDuplicateDenomination = "DUPLICATE_DENOMINATION"
	ErrCodeInvalidRole           = "INVALID_ROLE"
	ErrCodeSectionForbidden      = "SECTION_FORBIDDEN"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrItemNotFound          = NewDomainError(ErrCodeItemNotFound, "Menu item not found")
	ErrCategoryNotFound      = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrEmptyCart             = NewDomainError(ErrCodeEmptyCart, "Cart must contain at least one item")
	ErrMissingCustomerName   = NewDomainError(ErrCodeMissingCustomerName, "Customer name is required")
	ErrMissingDeliveryDetail = NewDomainError(ErrCodeMissingDeliveryDetail, "Delivery orders require phone and address")
	ErrDuplicateDenomination = NewDomainError(ErrCodeDuplicateDenomination, "A denomination with this value already exists")
	ErrInvalidRole           = NewDomainError(ErrCodeInvalidRole, "Role must be admin or staff")
	ErrSectionForbidden      = NewDomainError(ErrCodeSectionForbidden, "Section is not available for this role")
	ErrInvalidCredentials    = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
)
