package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTechIcon(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Python", "devicon-python-plain colored"},
		{"GO", "devicon-go-plain colored"},
		{"Apache Kafka", "devicon-apachekafka-plain colored"},
		{"Airflow", "si si-apacheairflow"},
		{"dbt", "si si-dbt"},
		{"Spark", "si si-apachespark"},
		{"COBOL", FallbackTechIcon},
		{"", FallbackTechIcon},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, TechIcon(tt.label))
		})
	}
}
