package careers

// staticPages maps normalized company names to known careers URLs. The
// resolver consults this table before attempting substring matching or
// URL generation.
var staticPages = map[string]string{
	"google":       "https://careers.google.com",
	"microsoft":    "https://careers.microsoft.com",
	"amazon":       "https://www.amazon.jobs",
	"apple":        "https://www.apple.com/careers",
	"meta":         "https://www.metacareers.com",
	"netflix":      "https://jobs.netflix.com",
	"spotify":      "https://www.lifeatspotify.com",
	"airbnb":       "https://careers.airbnb.com",
	"uber":         "https://www.uber.com/careers",
	"lyft":         "https://www.lyft.com/careers",
	"stripe":       "https://stripe.com/jobs",
	"square":       "https://careers.squareup.com",
	"shopify":      "https://www.shopify.com/careers",
	"atlassian":    "https://www.atlassian.com/company/careers",
	"salesforce":   "https://careers.salesforce.com",
	"oracle":       "https://www.oracle.com/careers",
	"ibm":          "https://www.ibm.com/careers",
	"intel":        "https://jobs.intel.com",
	"nvidia":       "https://www.nvidia.com/en-us/about-nvidia/careers",
	"adobe":        "https://www.adobe.com/careers.html",
	"twilio":       "https://www.twilio.com/company/jobs",
	"slack":        "https://slack.com/careers",
	"zoom":         "https://careers.zoom.us",
	"dropbox":      "https://jobs.dropbox.com",
	"github":       "https://github.com/about/careers",
	"gitlab":       "https://about.gitlab.com/jobs",
	"cloudflare":   "https://www.cloudflare.com/careers",
	"digitalocean": "https://www.digitalocean.com/careers",
	"mongodb":      "https://www.mongodb.com/careers",
	"elastic":      "https://www.elastic.co/careers",
	"datadog":      "https://careers.datadoghq.com",
	"hashicorp":    "https://www.hashicorp.com/careers",
	"docker":       "https://www.docker.com/career-openings",
	"red hat":      "https://www.redhat.com/en/jobs",
	"vmware":       "https://careers.vmware.com",
	"cisco":        "https://jobs.cisco.com",
	"paypal":       "https://careers.pypl.com",
	"coinbase":     "https://www.coinbase.com/careers",
	"robinhood":    "https://careers.robinhood.com",
	"instacart":    "https://instacart.careers",
	"doordash":     "https://careers.doordash.com",
	"pinterest":    "https://www.pinterestcareers.com",
	"reddit":       "https://www.redditinc.com/careers",
	"discord":      "https://discord.com/careers",
	"figma":        "https://www.figma.com/careers",
	"notion":       "https://www.notion.so/careers",
	"canva":        "https://www.canva.com/careers",
	"grammarly":    "https://www.grammarly.com/jobs",
	"booking.com":  "https://jobs.booking.com",
	"zalando":      "https://jobs.zalando.com",
	"n26":          "https://n26.com/en/careers",
	"deliveryhero": "https://careers.deliveryhero.com",
	"personio":     "https://www.personio.com/about-personio/careers",
	"klarna":       "https://www.klarna.com/careers",
	"revolut":      "https://www.revolut.com/careers",
	"wise":         "https://www.wise.jobs",
	"automattic":   "https://automattic.com/work-with-us",
	"mozilla":      "https://www.mozilla.org/en-US/careers",
	"duckduckgo":   "https://duckduckgo.com/hiring",
	"basecamp":     "https://basecamp.com/about/jobs",
	"zapier":       "https://zapier.com/jobs",
	"buffer":       "https://buffer.com/journey",
	"toggl":        "https://toggl.com/jobs",
	"remote":       "https://remote.com/careers",
	"deel":         "https://www.deel.com/careers",
}
