package models

// Dataset names. These double as sink table names and as keys in the run
// summary artifact.
const (
	DatasetAggregatedTransactions = "aggregated_transactions"
	DatasetAggregatedUsers        = "aggregated_users"
	DatasetMapTransactions        = "map_transactions"
	DatasetMapUsers               = "map_users"
	DatasetTopTransactions        = "top_transactions"
	DatasetTopUsers               = "top_users"
)

// DatasetNames lists all datasets in pipeline order.
var DatasetNames = []string{
	DatasetAggregatedTransactions,
	DatasetAggregatedUsers,
	DatasetMapTransactions,
	DatasetMapUsers,
	DatasetTopTransactions,
	DatasetTopUsers,
}

// Entity granularity tags used by the top-N datasets.
const (
	EntityTypeState    = "state"
	EntityTypeDistrict = "district"
	EntityTypePincode  = "pincode"
)

// Raw records come straight out of the extractors: names are uncleaned and
// measures are whatever the JSON decoder produced. The Transformer owns
// coercion, so measure fields stay untyped here.

type RawAggregatedTransaction struct {
	State           string
	Year            int
	Quarter         int
	TransactionType string
	PaymentMode     string
	Count           interface{}
	Amount          interface{}
}

type RawAggregatedUser struct {
	State           string
	Year            int
	Quarter         int
	RegisteredUsers interface{}
	AppOpens        interface{}
}

type RawMapTransaction struct {
	State    string
	Year     int
	Quarter  int
	District string
	Count    interface{}
	Amount   interface{}
}

type RawMapUser struct {
	State           string
	Year            int
	Quarter         int
	District        string
	RegisteredUsers interface{}
	AppOpens        interface{}
}

type RawTopTransaction struct {
	State      string
	Year       int
	Quarter    int
	EntityType string
	EntityName string
	Count      interface{}
	Amount     interface{}
}

type RawTopUser struct {
	State           string
	Year            int
	Quarter         int
	EntityType      string
	EntityName      string
	RegisteredUsers interface{}
}

// ExtractedData holds the raw records of all six datasets for one run.
type ExtractedData struct {
	AggregatedTransactions []RawAggregatedTransaction
	AggregatedUsers        []RawAggregatedUser
	MapTransactions        []RawMapTransaction
	MapUsers               []RawMapUser
	TopTransactions        []RawTopTransaction
	TopUsers               []RawTopUser
}

// TotalRecords returns the number of raw records across all datasets.
func (d *ExtractedData) TotalRecords() int {
	return len(d.AggregatedTransactions) +
		len(d.AggregatedUsers) +
		len(d.MapTransactions) +
		len(d.MapUsers) +
		len(d.TopTransactions) +
		len(d.TopUsers)
}

// Clean records are the Transformer's output: canonical names, typed
// measures, exactly one record per natural key.

// AggregatedTransaction is keyed by (state, year, quarter, transaction type).
type AggregatedTransaction struct {
	State           string
	Year            int
	Quarter         int
	TransactionType string
	Count           int64
	Amount          float64
}

// AggregatedUser is keyed by (state, year, quarter).
type AggregatedUser struct {
	State           string
	Year            int
	Quarter         int
	RegisteredUsers int64
	AppOpens        int64
}

// MapTransaction is keyed by (state, year, quarter, district). Country-scope
// rows carry district == state.
type MapTransaction struct {
	State    string
	Year     int
	Quarter  int
	District string
	Count    int64
	Amount   float64
}

// MapUser is keyed by (state, year, quarter, district).
type MapUser struct {
	State           string
	Year            int
	Quarter         int
	District        string
	RegisteredUsers int64
	AppOpens        int64
}

// TopTransaction is keyed by (state, year, quarter, entity type, entity name).
type TopTransaction struct {
	State      string
	Year       int
	Quarter    int
	EntityType string
	EntityName string
	Count      int64
	Amount     float64
}

// TopUser is keyed by (state, year, quarter, entity type, entity name).
type TopUser struct {
	State           string
	Year            int
	Quarter         int
	EntityType      string
	EntityName      string
	RegisteredUsers int64
}

// TransformedData holds the clean records of all six datasets for one run.
type TransformedData struct {
	AggregatedTransactions []AggregatedTransaction
	AggregatedUsers        []AggregatedUser
	MapTransactions        []MapTransaction
	MapUsers               []MapUser
	TopTransactions        []TopTransaction
	TopUsers               []TopUser
}

// TotalRecords returns the number of clean records across all datasets.
func (d *TransformedData) TotalRecords() int {
	return len(d.AggregatedTransactions) +
		len(d.AggregatedUsers) +
		len(d.MapTransactions) +
		len(d.MapUsers) +
		len(d.TopTransactions) +
		len(d.TopUsers)
}
