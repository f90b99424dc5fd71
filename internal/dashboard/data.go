// Package dashboard serves the aggregate widgets the dashboard screens
// render. The data is a canned demo dataset behind a Provider so the
// handlers can be tested against a trimmed variant.
package dashboard

// StatCard is one headline number with its trend indicator.
type StatCard struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Trend      string  `json:"trend"`
}

type Stats struct {
	TodaysMoney StatCard `json:"todaysMoney"`
	TodaysUsers StatCard `json:"todaysUsers"`
	NewClients  StatCard `json:"newClients"`
	TotalSales  StatCard `json:"totalSales"`
}

type Dataset struct {
	Name  string    `json:"name"`
	Data  []float64 `json:"data"`
	Color string    `json:"color"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type PageVisit struct {
	PageName    string `json:"pageName"`
	Visitors    string `json:"visitors"`
	UniqueUsers int    `json:"uniqueUsers"`
	BounceRate  string `json:"bounceRate"`
}

type SocialTraffic struct {
	Referral   string `json:"referral"`
	Visitors   string `json:"visitors"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

type Activity struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type QuickStats struct {
	TotalTransactions int `json:"totalTransactions"`
	TotalInvoices     int `json:"totalInvoices"`
	PendingPayments   int `json:"pendingPayments"`
	ActiveProjects    int `json:"activeProjects"`
}

type RecentTransaction struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
}

type Overview struct {
	Stats              Stats               `json:"stats"`
	QuickStats         QuickStats          `json:"quickStats"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
}

// Provider supplies the dashboard datasets.
type Provider interface {
	Stats() Stats
	SalesChart() ChartData
	PerformanceChart() ChartData
	PageVisits() []PageVisit
	SocialTraffic() []SocialTraffic
	RecentActivity() []Activity
	Overview() Overview
}

// DemoProvider returns the static demo dataset.
type DemoProvider struct{}

func (DemoProvider) Stats() Stats {
	return Stats{
		TodaysMoney: StatCard{Amount: 53897, Percentage: 3.48, Trend: "up"},
		TodaysUsers: StatCard{Amount: 3200, Percentage: 5.2, Trend: "up"},
		NewClients:  StatCard{Amount: 2503, Percentage: -2.82, Trend: "down"},
		TotalSales:  StatCard{Amount: 173000, Percentage: 8.12, Trend: "up"},
	}
}

func (DemoProvider) SalesChart() ChartData {
	return ChartData{
		Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Datasets: []Dataset{
			{Name: "Sales", Data: []float64{50, 40, 300, 220, 500, 250, 400, 230, 500, 200, 300, 400}, Color: "#4FD1C7"},
		},
	}
}

func (DemoProvider) PerformanceChart() ChartData {
	return ChartData{
		Labels: []string{"Q1", "Q2", "Q3", "Q4"},
		Datasets: []Dataset{
			{Name: "Orders", Data: []float64{400, 370, 330, 390}, Color: "#4299E1"},
		},
	}
}

func (DemoProvider) PageVisits() []PageVisit {
	return []PageVisit{
		{PageName: "/argon/", Visitors: "4,569", UniqueUsers: 340, BounceRate: "46,53%"},
		{PageName: "/argon/index.html", Visitors: "3,985", UniqueUsers: 319, BounceRate: "46,53%"},
		{PageName: "/argon/charts.html", Visitors: "3,513", UniqueUsers: 294, BounceRate: "36,49%"},
		{PageName: "/argon/tables.html", Visitors: "2,050", UniqueUsers: 147, BounceRate: "50,87%"},
		{PageName: "/argon/profile.html", Visitors: "1,795", UniqueUsers: 190, BounceRate: "46,53%"},
	}
}

func (DemoProvider) SocialTraffic() []SocialTraffic {
	return []SocialTraffic{
		{Referral: "Facebook", Visitors: "1,480", Percentage: 60, Color: "orange"},
		{Referral: "Facebook", Visitors: "5,480", Percentage: 70, Color: "orange"},
		{Referral: "Google", Visitors: "4,807", Percentage: 80, Color: "cyan"},
		{Referral: "Instagram", Visitors: "3,678", Percentage: 75, Color: "cyan"},
		{Referral: "Twitter", Visitors: "2,645", Percentage: 30, Color: "orange"},
	}
}

func (DemoProvider) RecentActivity() []Activity {
	return []Activity{
		{ID: "1", Type: "transaction", Title: "$2400, Design changes", Date: "22 DEC 7:20 PM", Icon: "bell", Color: "teal.300"},
		{ID: "2", Type: "order", Title: "New order #4219423", Date: "21 DEC 11:21 PM", Icon: "html5", Color: "orange"},
		{ID: "3", Type: "payment", Title: "Server Payments for April", Date: "21 DEC 9:28 PM", Icon: "cart", Color: "blue.400"},
		{ID: "4", Type: "card", Title: "New card added for order #3210145", Date: "20 DEC 3:52 PM", Icon: "credit-card", Color: "orange.300"},
		{ID: "5", Type: "package", Title: "Unlock packages for Development", Date: "19 DEC 11:35 PM", Icon: "dropbox", Color: "purple"},
	}
}

func (p DemoProvider) Overview() Overview {
	return Overview{
		Stats: p.Stats(),
		QuickStats: QuickStats{
			TotalTransactions: 156,
			TotalInvoices:     23,
			PendingPayments:   8,
			ActiveProjects:    12,
		},
		RecentTransactions: []RecentTransaction{
			{ID: "1", Name: "Netflix", Amount: -25.00, Date: "2024-03-27", Status: "completed"},
			{ID: "2", Name: "Apple Store", Amount: 99.99, Date: "2024-03-26", Status: "completed"},
			{ID: "3", Name: "Stripe Payment", Amount: 1250.00, Date: "2024-03-25", Status: "completed"},
		},
	}
}
