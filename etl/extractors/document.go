package extractors

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/psurana/pulse-etl/etl/models"
)

// Every pulse document is an envelope with a success flag and a payload
// whose shape depends on the dataset.
type document struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

var jsonNull = []byte("null")

// readDocument reads and validates one document, returning its payload.
// Any defect yields a skip reason instead of an error: a bad document is
// excluded, never fatal for the batch.
func readDocument(path string) (json.RawMessage, models.SkipReason, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, models.SkipParseError, false
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, models.SkipParseError, false
	}
	if !doc.Success {
		return nil, models.SkipUnsuccessful, false
	}
	if len(doc.Data) == 0 || bytes.Equal(bytes.TrimSpace(doc.Data), jsonNull) {
		return nil, models.SkipMissingPayload, false
	}

	return doc.Data, "", true
}

// Payload shapes, one per dataset family. Measure fields decode into
// interface{} on purpose: the source is inconsistent about numeric encoding
// and coercion is the Transformer's job.

// aggregated/transaction: list of named categories, each with a nested
// payment-instrument breakdown.
type aggregatedTransactionData struct {
	TransactionData []struct {
		Name               string `json:"name"`
		PaymentInstruments []struct {
			Type   string      `json:"type"`
			Count  interface{} `json:"count"`
			Amount interface{} `json:"amount"`
		} `json:"paymentInstruments"`
	} `json:"transactionData"`
}

// aggregated/user: singleton summary object.
type aggregatedUserData struct {
	Aggregated struct {
		RegisteredUsers interface{} `json:"registeredUsers"`
		AppOpens        interface{} `json:"appOpens"`
	} `json:"aggregated"`
}

// map/transaction hover: list of named regions, each with a metric list.
type mapTransactionData struct {
	HoverDataList []struct {
		Name   string `json:"name"`
		Metric []struct {
			Count  interface{} `json:"count"`
			Amount interface{} `json:"amount"`
		} `json:"metric"`
	} `json:"hoverDataList"`
}

// map/user hover: name-keyed map of user summaries.
type mapUserData struct {
	HoverData map[string]struct {
		RegisteredUsers interface{} `json:"registeredUsers"`
		AppOpens        interface{} `json:"appOpens"`
	} `json:"hoverData"`
}

// top/transaction: up to three independent entity buckets. Buckets and items
// may be absent or null.
type topTransactionData struct {
	States    []*topTransactionEntry `json:"states"`
	Districts []*topTransactionEntry `json:"districts"`
	Pincodes  []*topTransactionEntry `json:"pincodes"`
}

type topTransactionEntry struct {
	EntityName string `json:"entityName"`
	Metric     struct {
		Count  interface{} `json:"count"`
		Amount interface{} `json:"amount"`
	} `json:"metric"`
}

// top/user: same three buckets with a flat user count per entity.
type topUserData struct {
	States    []*topUserEntry `json:"states"`
	Districts []*topUserEntry `json:"districts"`
	Pincodes  []*topUserEntry `json:"pincodes"`
}

type topUserEntry struct {
	Name            string      `json:"name"`
	RegisteredUsers interface{} `json:"registeredUsers"`
}
