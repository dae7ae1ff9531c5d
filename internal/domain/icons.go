package domain

import "strings"

// FallbackTechIcon is used for labels missing from the icon table.
const FallbackTechIcon = "fas fa-code"

// techIcons maps lowercase tech labels to icon classes. Devicon classes
// cover languages and mainstream tooling; Simple Icons fill the data
// engineering gaps Devicon lacks.
var techIcons = map[string]string{
	// languages
	"python":     "devicon-python-plain colored",
	"java":       "devicon-java-plain colored",
	"javascript": "devicon-javascript-plain colored",
	"typescript": "devicon-typescript-plain colored",
	"go":         "devicon-go-plain colored",
	"golang":     "devicon-go-plain colored",
	"scala":      "devicon-scala-plain colored",
	"rust":       "devicon-rust-plain colored",
	"c++":        "devicon-cplusplus-plain colored",
	"c":          "devicon-c-plain colored",
	"r":          "devicon-r-plain colored",

	// streaming and storage
	"kafka":         "devicon-apachekafka-plain colored",
	"apache kafka":  "devicon-apachekafka-plain colored",
	"hadoop":        "devicon-hadoop-plain colored",
	"postgresql":    "devicon-postgresql-plain colored",
	"postgres":      "devicon-postgresql-plain colored",
	"mysql":         "devicon-mysql-plain colored",
	"mongodb":       "devicon-mongodb-plain colored",
	"redis":         "devicon-redis-plain colored",
	"elasticsearch": "devicon-elasticsearch-plain colored",
	"cassandra":     "devicon-cassandra-plain colored",
	"sql":           "devicon-postgresql-plain colored",

	// cloud
	"aws":                 "devicon-amazonwebservices-plain-wordmark colored",
	"amazon web services": "devicon-amazonwebservices-plain-wordmark colored",
	"gcp":                 "devicon-googlecloud-plain colored",
	"google cloud":        "devicon-googlecloud-plain colored",
	"azure":               "devicon-azure-plain colored",
	"microsoft azure":     "devicon-azure-plain colored",
	"docker":              "devicon-docker-plain colored",
	"kubernetes":          "devicon-kubernetes-plain colored",
	"k8s":                 "devicon-kubernetes-plain colored",

	// web
	"react":   "devicon-react-original colored",
	"vue":     "devicon-vuejs-plain colored",
	"angular": "devicon-angularjs-plain colored",
	"django":  "devicon-django-plain colored",
	"flask":   "devicon-flask-original colored",
	"fastapi": "devicon-fastapi-plain colored",
	"nodejs":  "devicon-nodejs-plain colored",
	"node.js": "devicon-nodejs-plain colored",
	"express": "devicon-express-original colored",

	// tooling
	"git":        "devicon-git-plain colored",
	"github":     "devicon-github-original colored",
	"gitlab":     "devicon-gitlab-plain colored",
	"jenkins":    "devicon-jenkins-plain colored",
	"terraform":  "devicon-terraform-plain colored",
	"ansible":    "devicon-ansible-plain colored",
	"nginx":      "devicon-nginx-original colored",
	"grafana":    "devicon-grafana-plain colored",
	"prometheus": "devicon-prometheus-original colored",

	// Simple Icons
	"airflow":         "si si-apacheairflow",
	"apache airflow":  "si si-apacheairflow",
	"dbt":             "si si-dbt",
	"snowflake":       "si si-snowflake",
	"databricks":      "si si-databricks",
	"tableau":         "si si-tableau",
	"looker":          "si si-looker",
	"powerbi":         "si si-powerbi",
	"apache flink":    "si si-apacheflink",
	"flink":           "si si-apacheflink",
	"spark":           "si si-apachespark",
	"apache spark":    "si si-apachespark",
	"redshift":        "si si-amazonredshift",
	"amazon redshift": "si si-amazonredshift",
	"bigquery":        "si si-googlebigquery",
	"google bigquery": "si si-googlebigquery",
	"s3":              "si si-amazons3",
	"amazon s3":       "si si-amazons3",
	"lambda":          "si si-awslambda",
	"aws lambda":      "si si-awslambda",
	"pandas":          "si si-pandas",
	"numpy":           "si si-numpy",
	"jupyter":         "si si-jupyter",
	"apache":          "si si-apache",
	"pytest":          "si si-pytest",
	"openai":          "si si-openai",
}

// TechIcon returns the icon class for a tech label, ignoring case.
func TechIcon(label string) string {
	if icon, ok := techIcons[strings.ToLower(label)]; ok {
		return icon
	}

	return FallbackTechIcon
}
