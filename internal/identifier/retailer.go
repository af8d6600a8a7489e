package identifier

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/bwmarrin/snowflake"
)

var stateCodes = map[string]string{
	"andhra pradesh":                           "AP",
	"arunachal pradesh":                        "AR",
	"assam":                                    "AS",
	"bihar":                                    "BR",
	"chhattisgarh":                             "CG",
	"goa":                                      "GA",
	"gujarat":                                  "GJ",
	"haryana":                                  "HR",
	"himachal pradesh":                         "HP",
	"jharkhand":                                "JH",
	"karnataka":                                "KA",
	"kerala":                                   "KL",
	"madhya pradesh":                           "MP",
	"maharashtra":                              "MH",
	"manipur":                                  "MN",
	"meghalaya":                                "ML",
	"mizoram":                                  "MZ",
	"nagaland":                                 "NL",
	"odisha":                                   "OD",
	"punjab":                                   "PB",
	"rajasthan":                                "RJ",
	"sikkim":                                   "SK",
	"tamil nadu":                               "TN",
	"telangana":                                "TS",
	"tripura":                                  "TR",
	"uttar pradesh":                            "UP",
	"uttarakhand":                              "UK",
	"west bengal":                              "WB",
	"andaman and nicobar islands":              "AN",
	"chandigarh":                               "CH",
	"dadra and nagar haveli and daman and diu": "DN",
	"delhi":                                    "DL",
	"jammu and kashmir":                        "JK",
	"ladakh":                                   "LA",
	"lakshadweep":                              "LD",
	"puducherry":                               "PY",
}

// StateCode returns the two-letter code for an Indian state or union territory, or XX.
func StateCode(state string) string {
	if code, ok := stateCodes[strings.ToLower(strings.TrimSpace(state))]; ok {
		return code
	}
	return "XX"
}

// RetailerIDInput carries the fields encoded into a retailer's unique id.
type RetailerIDInput struct {
	PartOfIndia  string
	BusinessType string
	State        string
	City         string
}

// Generator builds the immutable retailer identifiers.
type Generator struct {
	seq  Sequencer
	node *snowflake.Node
}

// NewGenerator wires a sequencer and a snowflake node.
func NewGenerator(seq Sequencer, nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}
	return &Generator{seq: seq, node: node}, nil
}

// RetailerUniqueID encodes region, store type, state, city and a per-prefix sequence,
// e.g. NKMHPUN0001 for a Kirana store in Pune, Maharashtra.
func (g *Generator) RetailerUniqueID(ctx context.Context, in RetailerIDInput) (string, error) {
	prefix := NormalizePartOfIndia(in.PartOfIndia) + storeInitial(in.BusinessType) + StateCode(in.State) + cityCode(in.City)
	n, err := g.seq.Next(ctx, "retailer:"+prefix)
	if err != nil {
		return "", fmt.Errorf("next retailer sequence: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, n), nil
}

// RetailerCode returns a short, time-ordered code such as R1A2B3C4D5E.
func (g *Generator) RetailerCode() string {
	return "R" + strings.ToUpper(g.node.Generate().Base36())
}

// NormalizePartOfIndia keeps N, E, W, S or C and defaults to N.
func NormalizePartOfIndia(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return "N"
	}
	switch v[:1] {
	case "N", "E", "W", "S", "C":
		return v[:1]
	}
	return "N"
}

func storeInitial(businessType string) string {
	for _, r := range strings.TrimSpace(businessType) {
		if unicode.IsLetter(r) {
			return strings.ToUpper(string(r))
		}
	}
	return "O"
}

func cityCode(city string) string {
	var b strings.Builder
	for _, r := range city {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() == 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "NA"
	}
	return b.String()
}
