package config

// BaseGenericDomains are free-mail and ISP domains. A shared domain between a
// hiring-client contact and a registry contact is not evidence of identity.
var BaseGenericDomains = []string{
	"yahoo.ca", "yahoo.com", "yahoo.fr", "ymail.com",
	"hotmail.com", "hotmail.ca", "hotmail.fr",
	"gmail.com", "outlook.com", "outlook.fr", "msn.com", "mail.com", "aol.com",
	"live.ca", "live.com", "live.fr", "live.be",
	"icloud.com", "me.com",
	"bell.com", "bell.ca", "bell.net", "bellnet.ca", "bellsouth.net", "bellaliant.com", "bellaliant.net",
	"sympatico.ca", "tlb.sympatico.ca", "ns.sympatico.ca",
	"videotron.ca", "videotron.qc.ca", "cablevision.qc.ca", "cgocable.ca",
	"eastlink.ca", "kos.net", "sasktel.net", "sogetel.net", "globetrotter.net",
	"telus.net", "telusplanet.net", "shaw.ca", "rogers.com",
	"mymts.net", "mts.net", "ivic.qc.ca", "qc.aira.com", "canada.ca", "axion.ca",
	"nb.aibn.com", "on.aibn.com", "nf.aibn.com", "nbnet.nb.ca",
	"execulink.com", "clintar.com", "pathcom.com", "oricom.ca",
	"xplornet.com", "mcsnet.ca", "att.net", "ns.aliantzinc.ca", "mnsi.net",
}

// BaseGenericNameWords are removed from company names before comparison.
var BaseGenericNameWords = []string{
	"construction", "contracting", "industriel", "industriels", "industrial", "industries",
	"service", "services", "solutions", "systems", "technologies", "installations",
	"enterprises", "company", "corporation", "limited",
	"inc", "ltd", "ltee", "co", "llc", "enr",
}
