package i18n

var catalogs = map[string]map[string]string{
	"en": {
		"ok": "OK",

		"error.internal":       "internal server error",
		"error.invalid_params": "invalid request parameters",
		"error.not_found":      "resource not found",

		"error.unauthorized":        "unauthorized",
		"error.forbidden":           "forbidden",
		"error.auth_header_missing": "authorization header missing",
		"error.auth_header_invalid": "authorization header invalid",
		"error.token_invalid":       "token invalid or expired",
		"error.token_revoked":       "token revoked, please login again",
		"error.jwt_secret_missing":  "jwt secret not configured",
		"error.user_disabled":       "account disabled",

		"error.email_exists":        "email already registered",
		"error.invalid_credentials": "email or password incorrect",
		"error.password_too_weak":       "password must be at least %d characters",
		"error.password_require_upper":  "password must contain an uppercase letter",
		"error.password_require_lower":  "password must contain a lowercase letter",
		"error.password_require_number": "password must contain a digit",
		"error.captcha_invalid":         "captcha incorrect or expired",
		"error.captcha_required":        "captcha required",

		"error.product_not_found":    "product not found",
		"error.product_unavailable":  "product unavailable",
		"error.topping_not_found":    "topping not found: %s",
		"error.topping_unavailable":  "topping unavailable: %s",
		"error.invalid_size":         "size not available for this product",
		"error.invalid_product_type": "unknown product type",

		"error.cart_item_not_found": "cart item not found",
		"error.cart_empty":          "cart is empty",
		"error.cart_unavailable":    "cart temporarily unavailable",

		"error.order_not_found":     "order not found",
		"error.invalid_status":      "unknown order status: %s",
		"error.order_create_failed": "failed to create order",

		"error.rate_limited":           "too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
	},
	"he": {
		"ok": "אישור",

		"error.internal":       "שגיאת שרת פנימית",
		"error.invalid_params": "פרמטרים שגויים בבקשה",
		"error.not_found":      "המשאב לא נמצא",

		"error.unauthorized":        "אין הרשאה",
		"error.forbidden":           "הגישה נדחתה",
		"error.auth_header_missing": "חסרה כותרת הרשאה",
		"error.auth_header_invalid": "כותרת הרשאה שגויה",
		"error.token_invalid":       "אסימון שגוי או שפג תוקפו",
		"error.token_revoked":       "האסימון בוטל, יש להתחבר מחדש",
		"error.jwt_secret_missing":  "סוד JWT אינו מוגדר",
		"error.user_disabled":       "החשבון מושבת",

		"error.email_exists":        "האימייל כבר רשום",
		"error.invalid_credentials": "אימייל או סיסמה שגויים",
		"error.password_too_weak":       "הסיסמה חייבת להכיל לפחות %d תווים",
		"error.password_require_upper":  "הסיסמה חייבת להכיל אות גדולה",
		"error.password_require_lower":  "הסיסמה חייבת להכיל אות קטנה",
		"error.password_require_number": "הסיסמה חייבת להכיל ספרה",
		"error.captcha_invalid":         "קוד האימות שגוי או שפג תוקפו",
		"error.captcha_required":        "נדרש קוד אימות",

		"error.product_not_found":    "המוצר לא נמצא",
		"error.product_unavailable":  "המוצר אינו זמין",
		"error.topping_not_found":    "התוספת לא נמצאה: %s",
		"error.topping_unavailable":  "התוספת אינה זמינה: %s",
		"error.invalid_size":         "הגודל אינו זמין למוצר זה",
		"error.invalid_product_type": "סוג מוצר לא מוכר",

		"error.cart_item_not_found": "הפריט לא נמצא בסל",
		"error.cart_empty":          "סל הקניות ריק",
		"error.cart_unavailable":    "סל הקניות אינו זמין כרגע",

		"error.order_not_found":     "ההזמנה לא נמצאה",
		"error.invalid_status":      "סטטוס הזמנה לא מוכר: %s",
		"error.order_create_failed": "יצירת ההזמנה נכשלה",

		"error.rate_limited":           "יותר מדי בקשות, נסו שוב בעוד %d שניות",
		"error.rate_limit_unavailable": "מגביל הקצב אינו זמין",
	},
}
