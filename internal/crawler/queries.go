package crawler

// DefaultSearchQueries is the static catalog the crawler rotates
// through. The search API returns at most 1,000 results per query
// string no matter how far you page, so the catalog partitions the
// repository space many overlapping ways (star ranges, languages,
// topics, date windows, forks, size, license, archived state, readme
// text) to keep discovering fresh repositories. Queries may overlap;
// uniqueness comes from the crawler's id-based deduplication.
var DefaultSearchQueries = []string{
	"stars:>0",
	"stars:>100",
	"stars:>1000",
	"stars:>5000",
	"stars:>10000",

	"stars:1..10",
	"stars:10..50",
	"stars:50..100",
	"stars:100..500",
	"stars:500..1000",
	"stars:1000..5000",

	"language:python stars:>0",
	"language:javascript stars:>0",
	"language:java stars:>0",
	"language:go stars:>0",
	"language:rust stars:>0",
	"language:typescript stars:>0",
	"language:cpp stars:>0",
	"language:c stars:>0",
	"language:csharp stars:>0",
	"language:php stars:>0",
	"language:ruby stars:>0",
	"language:swift stars:>0",
	"language:kotlin stars:>0",
	"language:scala stars:>0",
	"language:r stars:>0",
	"language:shell stars:>0",
	"language:dart stars:>0",
	"language:lua stars:>0",
	"language:perl stars:>0",
	"language:haskell stars:>0",
	"language:elixir stars:>0",
	"language:clojure stars:>0",
	"language:objective-c stars:>0",
	"language:vim-script stars:>0",
	"language:powershell stars:>0",

	"language:python stars:10..100",
	"language:python stars:100..1000",
	"language:javascript stars:10..100",
	"language:javascript stars:100..1000",
	"language:java stars:10..100",
	"language:typescript stars:10..100",
	"language:go stars:10..100",
	"language:rust stars:10..100",
	"language:cpp stars:10..100",
	"language:php stars:10..100",
	"language:ruby stars:10..100",
	"language:swift stars:10..100",
	"language:kotlin stars:10..100",

	"created:>2024-01-01",
	"created:2023-01-01..2024-01-01",
	"created:2022-01-01..2023-01-01",
	"created:2021-01-01..2022-01-01",
	"created:2020-01-01..2021-01-01",
	"pushed:>2024-06-01",
	"pushed:2024-01-01..2024-06-01",
	"pushed:2023-06-01..2024-01-01",
	"pushed:2023-01-01..2023-06-01",

	"topic:machine-learning stars:>0",
	"topic:deep-learning stars:>0",
	"topic:artificial-intelligence stars:>0",
	"topic:web stars:>0",
	"topic:webapp stars:>0",
	"topic:api stars:>0",
	"topic:mobile stars:>0",
	"topic:android stars:>0",
	"topic:ios stars:>0",
	"topic:frontend stars:>0",
	"topic:backend stars:>0",
	"topic:fullstack stars:>0",
	"topic:react stars:>0",
	"topic:vue stars:>0",
	"topic:angular stars:>0",
	"topic:nodejs stars:>0",
	"topic:docker stars:>0",
	"topic:kubernetes stars:>0",
	"topic:devops stars:>0",
	"topic:cloud stars:>0",
	"topic:aws stars:>0",
	"topic:game stars:>0",
	"topic:gaming stars:>0",
	"topic:bot stars:>0",
	"topic:cli stars:>0",
	"topic:tool stars:>0",
	"topic:framework stars:>0",
	"topic:library stars:>0",
	"topic:blockchain stars:>0",
	"topic:cryptocurrency stars:>0",
	"topic:security stars:>0",
	"topic:automation stars:>0",
	"topic:data-science stars:>0",
	"topic:data-analysis stars:>0",
	"topic:visualization stars:>0",

	"language:python topic:machine-learning",
	"language:python topic:data-science",
	"language:javascript topic:react",
	"language:javascript topic:nodejs",
	"language:typescript topic:react",
	"language:go topic:api",
	"language:rust topic:cli",
	"language:java topic:android",
	"language:swift topic:ios",
	"language:kotlin topic:android",

	"forks:>100 stars:>0",
	"forks:>500 stars:>0",
	"forks:>1000 stars:>0",
	"size:>1000 stars:>0",
	"size:>10000 stars:>0",

	"license:mit stars:>0",
	"license:apache-2.0 stars:>0",
	"license:gpl-3.0 stars:>0",
	"license:bsd-3-clause stars:>0",

	"archived:false stars:>10",
	"mirror:false stars:>10",
	"archived:false language:python",
	"archived:false language:javascript",

	"language:python created:>2023-01-01",
	"language:javascript created:>2023-01-01",
	"language:typescript created:>2023-01-01",
	"language:go created:>2023-01-01",
	"language:rust created:>2023-01-01",

	"good-first-issues:>0 stars:>0",
	"help-wanted-issues:>0 stars:>0",

	"react in:readme stars:>0",
	"vue in:readme stars:>0",
	"django in:readme stars:>0",
	"flask in:readme stars:>0",
	"express in:readme stars:>0",
	"spring in:readme stars:>0",
	"tensorflow in:readme stars:>0",
	"pytorch in:readme stars:>0",
	"fastapi in:readme stars:>0",
	"nextjs in:readme stars:>0",
}
