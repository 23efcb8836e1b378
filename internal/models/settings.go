package models

// Settings is the single configuration record for the tracker. Rates are
// stored as percentages (17 means 17%), matching the stored document shape.
type Settings struct {
	DefaultCurrency     string  `json:"defaultCurrency"`
	ExchangeRate        float64 `json:"exchangeRate"`
	EnableCustoms       bool    `json:"enableCustoms"`
	CustomsThreshold    float64 `json:"customsThreshold"`
	VATRate             float64 `json:"vatRate"`
	CustomsRate         float64 `json:"customsRate"`
	EnableNotifications bool    `json:"enableNotifications"`
	PriceDropAlerts     bool    `json:"priceDropAlerts"`
	ReminderAlerts      bool    `json:"reminderAlerts"`
	ShowImages          bool    `json:"showImages"`
	FontSize            int     `json:"fontSize"`
	Density             string  `json:"density"`
	Theme               string  `json:"theme"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		DefaultCurrency:     "USD",
		ExchangeRate:        3.7,
		EnableCustoms:       true,
		CustomsThreshold:    75,
		VATRate:             17,
		CustomsRate:         12,
		EnableNotifications: false,
		PriceDropAlerts:     true,
		ReminderAlerts:      true,
		ShowImages:          true,
		FontSize:            16,
		Density:             "comfortable",
		Theme:               "light",
	}
}
