package rule

// Static display dictionaries. These were scattered across the UI layer
// originally; they live here as immutable package-level tables so both
// compilers and any renderer share one source of truth.

// MetricInfo describes one measurable ad-performance signal.
type MetricInfo struct {
	Label       string
	Unit        string // "currency" | "percentage" | "unitless"
	Description string
}

var metricTable = map[string]MetricInfo{
	"broad_gmv":   {Label: "GMV", Unit: "currency", Description: "Gross merchandise value dari iklan"},
	"broad_order": {Label: "Pesanan", Unit: "unitless", Description: "Jumlah pesanan dari iklan"},
	"broad_roi":   {Label: "ROAS", Unit: "unitless", Description: "Return on ad spend"},
	"acos":        {Label: "ACOS", Unit: "percentage", Description: "Advertising cost of sale"},
	"click":       {Label: "Klik", Unit: "unitless", Description: "Jumlah klik iklan"},
	"cost":        {Label: "Spend", Unit: "currency", Description: "Total biaya iklan"},
	"cpc":         {Label: "CPS", Unit: "currency", Description: "Biaya per klik"},
	"ctr":         {Label: "CTR", Unit: "percentage", Description: "Click-through rate"},
	"impression":  {Label: "Impresi", Unit: "unitless", Description: "Jumlah tayangan iklan"},
	"view":        {Label: "View", Unit: "unitless", Description: "Jumlah tampilan iklan"},
	"cpm":         {Label: "CPM", Unit: "currency", Description: "Biaya per seribu tayangan"},
	"saldo":       {Label: "Saldo", Unit: "currency", Description: "Saldo iklan akun"},
}

var operatorTable = map[string]string{
	"greater_than":  "lebih dari",
	"less_than":     "kurang dari",
	"greater_equal": "lebih dari atau sama dengan",
	"less_equal":    "kurang dari atau sama dengan",
	"equal":         "sama dengan",
	"not_equal":     "tidak sama dengan",
}

var actionTable = map[string]string{
	"add_budget":            "Tambah Budget",
	"reduce_budget":         "Kurangi Budget",
	"subtract_budget":       "Kurangi Budget",
	"set_budget":            "Set Budget",
	"start_campaign":        "Mulai Iklan",
	"pause_campaign":        "Pause Iklan",
	"duplicate_campaign":    "Duplikat Iklan",
	"telegram_notification": "Notifikasi Telegram",
}

var connectorTable = map[string]string{
	"AND": "DAN",
	"OR":  "ATAU",
}

// MetricLabel returns the display label for a metric, or the raw value when
// the metric is unknown. Unknown values are never an error.
func MetricLabel(metric string) string {
	if m, ok := metricTable[metric]; ok {
		return m.Label
	}
	return metric
}

// Metric returns the full metric descriptor and whether it is known.
func Metric(metric string) (MetricInfo, bool) {
	m, ok := metricTable[metric]
	return m, ok
}

// OperatorLabel returns the Indonesian phrase for an operator, falling back
// to the raw value for unrecognized operators.
func OperatorLabel(op string) string {
	if l, ok := operatorTable[op]; ok {
		return l
	}
	return op
}

// ActionLabel returns the display label for an action type. Unknown types
// fall back to the action's own label, then to the raw type string.
func ActionLabel(a Action) string {
	if l, ok := actionTable[a.Type]; ok {
		return l
	}
	if a.Label != "" {
		return a.Label
	}
	return a.Type
}

// Connector translates a group-level AND/OR token to its display form.
func Connector(op string) string {
	if c, ok := connectorTable[op]; ok {
		return c
	}
	return op
}
