package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotification_Data(t *testing.T) {
	n := &Notification{
		Key:     "Quiniela Leidsa|2025-07-15|07-14-22",
		Lottery: "Quiniela Leidsa",
		Date:    "2025-07-15",
		Time:    "7:30PM",
		Numbers: "07-14-22",
		Source:  "tusnumerosrd.com",
	}

	assert.Equal(t, map[string]string{
		"type":    "result",
		"lottery": "Quiniela Leidsa",
		"date":    "2025-07-15",
		"time":    "7:30PM",
		"numbers": "07-14-22",
		"source":  "tusnumerosrd.com",
	}, n.Data())
	assert.Equal(t, "loteria_quiniela_leidsa_2025-07-15", n.CollapseKey("loteria_quiniela_leidsa"))
}
