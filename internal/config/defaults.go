package config

import "jobsearch-engine/internal/domain"

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Default returns the built-in configuration: the 24 tracked firms and all
// scoring tables. Every call returns fresh slices.
func Default() Config {
	var cfg Config
	cfg.App.Addr = "127.0.0.1:38471"
	cfg.App.DataDir = "."

	cfg.HTTP = HTTPConfig{
		UserAgent:      DefaultUserAgent,
		TimeoutSeconds: 10,
		RatePerSecond:  2,
		Burst:          2,
	}
	cfg.Scrape.MaxConcurrency = 4

	cfg.Search = SearchConfig{
		Sites:              []string{"linkedin", "indeed"},
		ResultsWanted:      20,
		Distance:           50,
		Threshold:          0.5,
		MaxExpansions:      8,
		MaxTotalExpansions: 15,
	}
	cfg.Boards.TimeoutSeconds = 60

	cfg.Sources = defaultSources()
	cfg.Tables = defaultTables()
	return cfg
}

func src(id, name, url string, kind domain.ATSKind, category string) domain.SourceDefinition {
	return domain.SourceDefinition{ID: id, DisplayName: name, CareerPageURL: url, ATSKind: kind, Category: category}
}

func defaultSources() []domain.SourceDefinition {
	const (
		prop  = "Prop Trading"
		hedge = "Hedge Fund"
		asset = "Asset Manager"
		bank  = "Investment Bank"
	)
	return []domain.SourceDefinition{
		src("hudson_river_trading", "Hudson River Trading", "https://www.hudsonrivertrading.com/careers/", domain.ATSGreenhouse, prop),
		// jobvite pages are parsed as plain HTML
		src("quantlab", "QuantLab Financial", "https://www.quantlab.com/careers", domain.ATSHTMLCustom, prop),
		src("jane_street", "Jane Street", "https://www.janestreet.com/join-jane-street/open-roles/", domain.ATSHTMLCustom, prop),
		src("citadel_securities", "Citadel Securities", "https://www.citadelsecurities.com/careers/open-opportunities/", domain.ATSHTMLCustom, prop),
		src("optiver", "Optiver", "https://www.optiver.com/careers", domain.ATSHTMLCustom, prop),
		src("akuna_capital", "Akuna Capital", "https://akunacapital.com/careers", domain.ATSHTMLCustom, prop),
		src("old_mission", "Old Mission Capital", "https://oldmissioncapital.com/careers", domain.ATSGreenhouse, prop),
		src("gts", "GTS Global Trading", "https://gtsx.com/careers", domain.ATSLever, prop),
		src("flow_traders", "Flow Traders", "https://www.flowtraders.com/careers", domain.ATSGreenhouse, prop),

		src("citadel", "Citadel LLC", "https://www.citadel.com/careers/open-opportunities/", domain.ATSHTMLCustom, hedge),
		src("worldquant", "WorldQuant", "https://www.worldquant.com/careers", domain.ATSHTMLCustom, hedge),
		src("two_sigma", "Two Sigma", "https://www.twosigma.com/careers", domain.ATSHTMLCustom, hedge),
		src("pdt_partners", "PDT Partners", "https://www.pdtpartners.com/careers", domain.ATSGreenhouse, hedge),
		src("bridgewater", "Bridgewater Associates", "https://www.bridgewater.com/careers", domain.ATSHTMLCustom, hedge),
		src("aqr", "AQR Capital Management", "https://www.aqr.com/Careers", domain.ATSGreenhouse, hedge),
		src("squarepoint", "Squarepoint Capital", "https://www.squarepoint-capital.com/careers", domain.ATSHTMLCustom, hedge),
		src("teza", "Teza Technologies", "https://www.teza.com/careers", domain.ATSHTMLCustom, hedge),

		src("blackrock", "BlackRock", "https://careers.blackrock.com", domain.ATSHTMLCustom, asset),
		src("fidelity", "Fidelity Investments", "https://jobs.fidelity.com", domain.ATSUnsupported, asset),
		src("state_street", "State Street", "https://careers.statestreet.com", domain.ATSUnsupported, asset),

		src("deutsche_bank", "Deutsche Bank", "https://careers.db.com", domain.ATSHTMLCustom, bank),
		src("barclays", "Barclays", "https://search.jobs.barclays/", domain.ATSUnsupported, bank),
		src("societe_generale", "Société Générale", "https://careers.societegenerale.com", domain.ATSUnsupported, bank),
		src("nomura", "Nomura", "https://www.nomura.com/careers", domain.ATSHTMLCustom, bank),
	}
}

func defaultTables() Tables {
	return Tables{
		Roles: []Expansion{
			{"software engineer", []string{"Software Engineer", "Software Developer", "Backend Engineer", "Full Stack Engineer", "Frontend Engineer", "Application Developer", "Backend Software Developer", "Full Stack Software Engineer"}},
			{"backend engineer", []string{"Backend Engineer", "Backend Developer", "Backend Software Engineer", "Server Side Engineer", "API Engineer"}},
			{"frontend engineer", []string{"Frontend Engineer", "Frontend Developer", "UI Engineer", "Web Developer", "React Developer", "Vue Developer", "Angular Developer"}},
			{"full stack engineer", []string{"Full Stack Engineer", "Full Stack Developer", "Full-Stack Engineer", "Fullstack Engineer"}},
			{"data scientist", []string{"Data Scientist", "Machine Learning Engineer", "ML Engineer", "Applied Scientist", "Research Scientist"}},
			{"data analyst", []string{"Data Analyst", "Business Analyst", "Analytics Engineer", "Business Intelligence Analyst", "BI Analyst"}},
			{"data engineer", []string{"Data Engineer", "ETL Engineer", "Data Platform Engineer", "Big Data Engineer", "Pipeline Engineer"}},
			{"devops engineer", []string{"DevOps Engineer", "Site Reliability Engineer", "SRE", "Cloud Engineer", "Infrastructure Engineer", "Platform Engineer"}},
			{"network engineer", []string{"Network Engineer", "Network Administrator", "Network Architect", "Systems Engineer"}},
			{"security engineer", []string{"Security Engineer", "Cybersecurity Engineer", "Information Security Engineer", "AppSec Engineer", "Security Analyst"}},
			{"python developer", []string{"Python Developer", "Python Engineer", "Python Software Engineer", "Django Developer", "Flask Developer"}},
			{"java developer", []string{"Java Developer", "Java Engineer", "Java Software Engineer", "Spring Boot Developer", "J2EE Developer"}},
			{"javascript developer", []string{"JavaScript Developer", "JS Developer", "Node.js Developer", "React Developer", "Vue.js Developer", "Angular Developer"}},
			{"mobile developer", []string{"Mobile Developer", "iOS Developer", "Android Developer", "React Native Developer", "Flutter Developer"}},
			{"qa engineer", []string{"QA Engineer", "Quality Assurance Engineer", "Test Engineer", "SDET", "Automation Engineer"}},
			{"product manager", []string{"Product Manager", "Technical Product Manager", "Senior Product Manager", "Associate Product Manager"}},
			{"quant trader", []string{"Quant Trader", "Quantitative Trader", "Algorithmic Trader", "Trading Analyst", "Quantitative Analyst", "Trader", "Trading Associate"}},
			{"quantitative analyst", []string{"Quantitative Analyst", "Quant Analyst", "Quantitative Researcher", "Quantitative Associate", "Risk Analyst"}},
			{"investment banker", []string{"Investment Banker", "Investment Banking Analyst", "Investment Banking Associate", "IB Analyst", "Banking Analyst"}},
			{"financial analyst", []string{"Financial Analyst", "Finance Analyst", "Investment Analyst", "Equity Analyst", "Research Analyst"}},
			{"accountant", []string{"Accountant", "Staff Accountant", "Senior Accountant", "Accounting Associate"}},
			{"marketing manager", []string{"Marketing Manager", "Digital Marketing Manager", "Marketing Lead", "Growth Marketing Manager"}},
			{"sales engineer", []string{"Sales Engineer", "Solutions Engineer", "Presales Engineer", "Technical Sales Engineer"}},
		},
		Tech: []Expansion{
			{"python", []string{"Python Developer", "Python Engineer", "Django Developer", "Flask Developer"}},
			{"javascript", []string{"JavaScript Developer", "Node.js Developer", "React Developer", "Vue Developer"}},
			{"java", []string{"Java Developer", "Java Engineer", "Spring Boot Developer"}},
			{"c++", []string{"C++ Engineer", "C++ Developer", "C++ Software Engineer"}},
			{"go", []string{"Go Developer", "Golang Engineer", "Go Backend Engineer"}},
			{"rust", []string{"Rust Developer", "Rust Engineer"}},
			{"react", []string{"React Developer", "React Engineer", "Frontend React Developer"}},
			{"node", []string{"Node.js Developer", "Node Developer", "Backend Node Engineer"}},
		},
		RoleVariants: []Expansion{
			{"engineer", []string{"Engineer", "Developer", "Specialist", "Architect"}},
			{"developer", []string{"Developer", "Engineer", "Programmer", "Specialist"}},
			{"analyst", []string{"Analyst", "Specialist", "Consultant", "Associate"}},
			{"manager", []string{"Manager", "Lead", "Director", "Head"}},
			{"scientist", []string{"Scientist", "Researcher", "Analyst", "Engineer"}},
			{"trader", []string{"Trader", "Associate", "Analyst", "Specialist"}},
			{"consultant", []string{"Consultant", "Analyst", "Advisor", "Specialist"}},
			{"designer", []string{"Designer", "Specialist", "Lead", "Creative"}},
			{"architect", []string{"Architect", "Designer", "Engineer", "Lead"}},
		},
		Areas:       []string{"Backend", "Frontend", "Full Stack"},
		TechSignals: []string{"software", "data", "machine learning", "ml", "ai"},

		Exclusion: []string{
			"w2", "c2c", "c2h", "corp to corp", "corp-to-corp",
			"1099", "contract to hire", "w-2", "w 2",
			"third party", "3rd party", "vendor", "staffing",
			"no c2c", "no w2", "visa sponsor", "h1b",
			"bench sales", "recruiter", "please share resume",
		},
		TechDomains: []Bucket{
			{"java", []string{"java", "jdk", "jvm", "spring", "hibernate", "maven", "gradle"}},
			{"python", []string{"python", "django", "flask", "fastapi", "pandas", "numpy", "pytorch"}},
			{"javascript", []string{"javascript", "js", "node", "react", "vue", "angular", "typescript"}},
			{"data", []string{"data scientist", "data analyst", "data engineer", "analytics", "ml", "machine learning"}},
			{"software", []string{"software engineer", "software developer", "swe", "backend", "frontend", "full stack"}},
			{"devops", []string{"devops", "sre", "site reliability", "kubernetes", "docker", "aws", "cloud"}},
			{"network", []string{"network engineer", "network admin", "cisco", "routing", "switching"}},
			{"security", []string{"security", "cybersecurity", "infosec", "penetration", "ethical hacking"}},
		},
		InternshipMarkers: []string{"intern", "interns", "internship", "internships", "co-op", "coop", "student", "students"},
		SeniorityMarkers: []string{
			"senior", "sr.", "sr", "lead", "principal", "staff", "architect",
			"director", "manager", "head of", "chief", "vp", "vice president",
		},
		QuerySeniority: []string{"senior", "sr", "sr."},

		Degrees: []DegreeLevel{
			{"phd", 5}, {"doctorate", 5},
			{"master", 4}, {"masters", 4}, {"mba", 4}, {"ms", 4}, {"ma", 4},
			{"bachelor", 3}, {"bachelors", 3}, {"bs", 3}, {"ba", 3},
			{"associate", 2},
		},
		DegreeSignals: []string{"degree", "bachelor", "bachelors", "master", "masters", "phd", "doctorate"},
		StopWords:     []string{"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by"},
	}
}
