package core

type SqlQuery struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

// SqlQueries holds a collection of SqlQuery instances.
type SqlQueries struct {
	Queries []SqlQuery `yaml:"queries"`
}

// DefaultSqlQueries are run against the Findings table when no queries file is given.
var DefaultSqlQueries = SqlQueries{
	Queries: []SqlQuery{
		{
			Name: "Violations by Project",
			Query: `SELECT projectName, COUNT(*) AS violations
FROM Findings
WHERE isViolation = 1
GROUP BY projectName
ORDER BY violations DESC, projectName`,
		},
		{
			Name: "Findings by Project",
			Query: `SELECT projectName,
       COUNT(*) AS findings,
       SUM(isViolation) AS violations,
       ROUND(100.0 * SUM(isViolation) / COUNT(*), 2) AS violationPercent
FROM Findings
GROUP BY projectName
ORDER BY projectName`,
		},
		{
			Name: "Findings by Day",
			Query: `SELECT substr(timestamp, 1, 10) AS day,
       COUNT(*) AS findings,
       SUM(isViolation) AS violations
FROM Findings
GROUP BY day
ORDER BY day`,
		},
	},
}
