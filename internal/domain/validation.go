package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone accepts any input carrying at least ten digits.
func ValidPhone(phone string) bool {
	return len(nonDigits.ReplaceAllString(phone, "")) >= 10
}

// ValidZipCode accepts 5-digit or 5-4 ZIP formats.
func ValidZipCode(zip string) bool {
	return zipPattern.MatchString(zip)
}

// ValidCardNumber accepts exactly 16 digits, ignoring spaces.
func ValidCardNumber(cardNumber string) bool {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	return len(digits) == 16 && digitsPattern.MatchString(digits)
}

// ValidExpiryDate accepts MM/YY that has not already elapsed relative to now.
func ValidExpiryDate(expiry string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

func ValidCVV(cvv string) bool {
	return len(cvv) == 3 && digitsPattern.MatchString(cvv)
}

// ValidateShipping checks the step-1 required fields and formats, returning a
// field->message map. An empty map means the step may advance.
func ValidateShipping(info ShippingInfo) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(info.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(info.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(info.Email) == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(info.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(info.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !ValidPhone(info.Phone) {
		errs["phone"] = "Please enter a valid phone number (at least 10 digits)"
	}
	if strings.TrimSpace(info.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(info.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(info.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(info.ZipCode) == "" {
		errs["zipCode"] = "ZIP code is required"
	} else if !ValidZipCode(info.ZipCode) {
		errs["zipCode"] = "Please enter a valid ZIP code (5 digits or 5-4 format)"
	}

	return errs
}

// ValidatePayment checks the step-2 fields. Card details are validated only
// for the credit-card method; any other selected method suffices on its own.
// The billing address is validated under billing-prefixed keys when it is not
// the same as shipping.
func ValidatePayment(payment PaymentInfo, billing BillingAddress, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if payment.Method == PaymentCreditCard {
		if !ValidCardNumber(payment.CardNumber) {
			errs["cardNumber"] = "Please enter a valid 16-digit card number"
		}
		if strings.TrimSpace(payment.CardName) == "" {
			errs["cardName"] = "Cardholder name is required"
		}
		if !ValidExpiryDate(payment.ExpiryDate, now) {
			errs["expiryDate"] = "Please enter a valid expiry date (MM/YY)"
		}
		if !ValidCVV(payment.CVV) {
			errs["cvv"] = "Please enter a valid 3-digit CVV"
		}
	} else if strings.TrimSpace(payment.Method) == "" {
		errs["method"] = "Payment method is required"
	}

	if !billing.SameAsShipping {
		if strings.TrimSpace(billing.FirstName) == "" {
			errs["billingFirstName"] = "First name is required"
		}
		if strings.TrimSpace(billing.LastName) == "" {
			errs["billingLastName"] = "Last name is required"
		}
		if strings.TrimSpace(billing.Address) == "" {
			errs["billingAddress"] = "Address is required"
		}
		if strings.TrimSpace(billing.City) == "" {
			errs["billingCity"] = "City is required"
		}
		if strings.TrimSpace(billing.State) == "" {
			errs["billingState"] = "State is required"
		}
		if strings.TrimSpace(billing.ZipCode) == "" {
			errs["billingZipCode"] = "ZIP code is required"
		}
	}

	return errs
}
