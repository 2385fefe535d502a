package domain

import "time"

type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Quantity    int       `json:"quantity"`
	SellerID    string    `json:"sellerId"`
	SellerName  string    `json:"sellerName,omitempty"`
	PlatformID  string    `json:"platformId,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	Category    string    `json:"category,omitempty"`
	CompanyID   string    `json:"companyId,omitempty"`
	Company     string    `json:"company,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Platform struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
