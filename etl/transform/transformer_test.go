package transform_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/transform"
	"github.com/psurana/pulse-etl/etl/utils"
)

func newTransformer() *transform.Transformer {
	return transform.NewTransformer(
		transform.NewNormalizer(transform.DefaultAliases()),
		utils.NewETLLogger("", false),
	)
}

func TestAggregatedTransactionsCollapsesInstruments(t *testing.T) {
	tr := newTransformer()

	raw := []models.RawAggregatedTransaction{
		{State: "india", Year: 2023, Quarter: 1, TransactionType: "Recharge", PaymentMode: "A", Count: float64(10), Amount: float64(100)},
		{State: "india", Year: 2023, Quarter: 1, TransactionType: "Recharge", PaymentMode: "B", Count: float64(5), Amount: float64(50)},
	}

	rows := tr.AggregatedTransactions(raw)
	require.Len(t, rows, 1)
	require.Equal(t, models.AggregatedTransaction{
		State:           "India",
		Year:            2023,
		Quarter:         1,
		TransactionType: "Recharge",
		Count:           15,
		Amount:          150,
	}, rows[0])
}

func TestAggregatedTransactionsOrderIndependent(t *testing.T) {
	tr := newTransformer()

	var raw []models.RawAggregatedTransaction
	for i := 0; i < 20; i++ {
		raw = append(raw, models.RawAggregatedTransaction{
			State:           "india",
			Year:            2020 + i%3,
			Quarter:         1 + i%4,
			TransactionType: []string{"Recharge", "P2P", "Merchant"}[i%3],
			Count:           float64(i),
			Amount:          float64(i) * 1.5,
		})
	}

	expected := tr.AggregatedTransactions(raw)

	shuffled := make([]models.RawAggregatedTransaction, len(raw))
	copy(shuffled, raw)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	require.Equal(t, expected, tr.AggregatedTransactions(shuffled))
}

func TestAggregatedTransactionsDropsIncompleteRows(t *testing.T) {
	tr := newTransformer()

	raw := []models.RawAggregatedTransaction{
		{State: "", Year: 2023, Quarter: 1, TransactionType: "Recharge", Count: float64(1), Amount: float64(1)},
		{State: "india", Year: 0, Quarter: 1, TransactionType: "Recharge", Count: float64(1), Amount: float64(1)},
		{State: "india", Year: 2023, Quarter: 0, TransactionType: "Recharge", Count: float64(1), Amount: float64(1)},
		{State: "india", Year: 2023, Quarter: 1, TransactionType: "", Count: float64(1), Amount: float64(1)},
		{State: "india", Year: 2023, Quarter: 1, TransactionType: "Recharge", Count: float64(1), Amount: float64(1)},
	}

	rows := tr.AggregatedTransactions(raw)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].Count)
}

func TestCoercionDefaultsToZero(t *testing.T) {
	tr := newTransformer()

	raw := []models.RawAggregatedTransaction{
		{State: "india", Year: 2023, Quarter: 1, TransactionType: "Recharge", Count: "not a number", Amount: nil},
		{State: "india", Year: 2023, Quarter: 1, TransactionType: "Recharge", Count: "25", Amount: "2.5"},
	}

	rows := tr.AggregatedTransactions(raw)
	require.Len(t, rows, 1)
	require.Equal(t, int64(25), rows[0].Count)
	require.Equal(t, 2.5, rows[0].Amount)
}

func TestAggregatedUsersGroupsByStateYearQuarter(t *testing.T) {
	tr := newTransformer()

	raw := []models.RawAggregatedUser{
		{State: "india", Year: 2022, Quarter: 3, RegisteredUsers: float64(100), AppOpens: float64(1000)},
		{State: "india", Year: 2022, Quarter: 3, RegisteredUsers: float64(50), AppOpens: float64(500)},
		{State: "india", Year: 2022, Quarter: 4, RegisteredUsers: float64(7), AppOpens: float64(70)},
	}

	rows := tr.AggregatedUsers(raw)
	require.Len(t, rows, 2)
	require.Equal(t, int64(150), rows[0].RegisteredUsers)
	require.Equal(t, int64(1500), rows[0].AppOpens)
	require.Equal(t, int64(7), rows[1].RegisteredUsers)
}

func TestMapTransactionsKeepsDistrictGranularity(t *testing.T) {
	tr := newTransformer()

	raw := []models.RawMapTransaction{
		{State: "karnataka", Year: 2023, Quarter: 1, District: "bengaluru urban", Count: float64(3), Amount: float64(30)},
		{State: "karnataka", Year: 2023, Quarter: 1, District: "bengaluru urban", Count: float64(4), Amount: float64(40)},
		{State: "karnataka", Year: 2023, Quarter: 1, District: "mysuru", Count: float64(1), Amount: float64(10)},
	}

	rows := tr.MapTransactions(raw)
	require.Len(t, rows, 2)
	require.Equal(t, "Karnataka", rows[0].State)
	require.Equal(t, "bengaluru urban", rows[0].District)
	require.Equal(t, int64(7), rows[0].Count)
	require.Equal(t, 70.0, rows[0].Amount)
	require.Equal(t, "mysuru", rows[1].District)
}

func TestTopTransactionsPincodePassesThrough(t *testing.T) {
	tr := newTransformer()

	raw := []models.RawTopTransaction{
		{State: "india", Year: 2023, Quarter: 2, EntityType: "pincode", EntityName: "560001", Count: float64(9), Amount: float64(90)},
		{State: "india", Year: 2023, Quarter: 2, EntityType: "district", EntityName: "bengaluru  urban!", Count: float64(2), Amount: float64(20)},
	}

	rows := tr.TopTransactions(raw)
	require.Len(t, rows, 2)

	byType := map[string]models.TopTransaction{}
	for _, row := range rows {
		byType[row.EntityType] = row
	}
	require.Equal(t, "560001", byType[models.EntityTypePincode].EntityName)
	require.Equal(t, "bengaluru urban", byType[models.EntityTypeDistrict].EntityName)
}

func TestTopUsersDropsRowsWithoutEntity(t *testing.T) {
	tr := newTransformer()

	raw := []models.RawTopUser{
		{State: "india", Year: 2023, Quarter: 2, EntityType: "state", EntityName: "", RegisteredUsers: float64(5)},
		{State: "india", Year: 2023, Quarter: 2, EntityType: "", EntityName: "kerala", RegisteredUsers: float64(5)},
		{State: "india", Year: 2023, Quarter: 2, EntityType: "state", EntityName: "kerala", RegisteredUsers: float64(5)},
	}

	rows := tr.TopUsers(raw)
	require.Len(t, rows, 1)
	require.Equal(t, "kerala", rows[0].EntityName)
	require.Equal(t, int64(5), rows[0].RegisteredUsers)
}

func TestTransformRunsAllDatasets(t *testing.T) {
	tr := newTransformer()

	extracted := &models.ExtractedData{
		AggregatedTransactions: []models.RawAggregatedTransaction{
			{State: "india", Year: 2023, Quarter: 1, TransactionType: "Recharge", Count: float64(1), Amount: float64(1)},
		},
		AggregatedUsers: []models.RawAggregatedUser{
			{State: "india", Year: 2023, Quarter: 1, RegisteredUsers: float64(1), AppOpens: float64(1)},
		},
		MapUsers: []models.RawMapUser{
			{State: "kerala", Year: 2023, Quarter: 1, District: "kochi", RegisteredUsers: float64(1), AppOpens: float64(1)},
		},
	}

	transformed := tr.Transform(extracted)
	require.Equal(t, 3, transformed.TotalRecords())
	require.Empty(t, transformed.TopTransactions)
}
