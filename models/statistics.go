package models

type MonthlyTransactions struct {
	Month  string  `json:"month"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type Statistics struct {
	TotalUsers          int64                 `json:"totalUsers"`
	TotalProviders      int64                 `json:"totalProviders"`
	TotalReceivers      int64                 `json:"totalReceivers"`
	TotalTransactions   int64                 `json:"totalTransactions"`
	TotalRevenue        float64               `json:"totalRevenue"`
	MonthlyTransactions []MonthlyTransactions `json:"monthlyTransactions"`
	RecentUsers         []User                `json:"recentUsers"`
}
