package filter

// defaultCorpus is the built-in trigger list. Order is match precedence:
// the first entry found in a post is the one reported.
var defaultCorpus = []string{
	// trade slang
	"chippie",
	"brickie",
	"tradie",

	// problems
	"leaky pipe",
	"dripping faucet",
	"running toilet",
	"clogged drain",
	"blocked toilet",
	"burst pipe",
	"low water pressure",
	"no hot water",
	"boiler breakdown",
	"boiler repair",
	"water leak",
	"unpleasant odours from pipes",
	"tripping circuit breaker",
	"faulty wiring",
	"dead outlet",
	"flickering lights",
	"power outage",
	"overheated appliance",
	"overheated switch",
	"leaky roof",
	"missing tiles",
	"damaged shingles",
	"blocked gutters",
	"overflowing gutters",
	"sagging gutters",
	"damp patches around roofline",
	"cracks in wall",
	"cracks in ceiling",
	"uneven floor",
	"damp walls",
	"mould",
	"mildew",
	"musty smell",
	"peeling paint",
	"rotting wood",
	"foundation cracks",
	"rising damp",
	"drafty windows",
	"broken window",
	"cracked glass",
	"difficulty opening window",
	"difficulty closing window",
	"difficulty opening door",
	"difficulty closing door",
	"rotting window frame",
	"damaged door seal",
	"broken appliance",
	"wall damage",
	"hole in wall",
	"broken fence",
	"damaged patio",
	"damaged deck",
	"no power",
	"electrical issue",
	"overloaded circuit",
	"fuse box",
	"fascia repair",
	"soffit repair",
	"bargeboard repair",
	"dishwasher repair",
	"washing machine repair",
	"oven repair",
	"fence repair",
	"patio repair",
	"deck repair",

	// projects
	"kitchen renovation",
	"bathroom remodel",
	"loft conversion",
	"basement finishing",
	"interior renovation",
	"garage conversion",
	"house extension",
	"two-storey extension",
	"single-storey extension",
	"building extension",
	"garden design",
	"landscaping",
	"deck building",
	"patio renovation",
	"garden office installation",
	"new outbuilding construction",
	"window installation",
	"door installation",
	"conservatory installation",
	"boiler installation",
	"appliance installation",
	"flooring installation",
	"gutter guard installation",
	"attic conversion",
	"rendering",
	"damp proofing",
	"wall skimming",
	"structural timber work",
	"stump grinding",
	"garden clearance",
	"furniture re-upholstery",
	"flue inspection",
	"blockage removal",
	"security upgrades",
	"double glazing",
	"upvc products",
	"bifold doors",
	"orangeries",
	"porches",
	"front door",
	"back door",
	"sliding patio door",
	"french door",
	"garage door",
	"chimney cleaning",
	"tree removal",
	"pruning",
	"custom furniture",
	"shelving",
	"wall repairs",
	"minor installations",
	"general repairs",
	"odd jobs",

	// location and urgency
	"near me",
	"local",
	"in my area",
	"in birmingham",
	"urgent",
	"emergency",
	"asap",
	"quickly",
	"immediate",
	"need help now",
	"fast repair",

	// recommendation requests
	"recommend a",
	"any recommendations for",
	"looking for a good",
	"can anyone suggest a",
	"who do you use for",
	"any trusted",
	"best [trade] in [area]",
	"experienced [trade]",
	"looking for",
	"need a",
	"seeking",
	"require",
	"want to hire",
	"quotes for",
	"job spec for",
	"help with",
	"advice on",
	"my [item] is [problem]",
	"have a [problem] with",
	"experiencing [issue]",
	"need to fix",
	"need to repair",

	// general maintenance
	"home maintenance",
	"home repair",
	"property maintenance",
	"property repair",
	"house upkeep",
	"building works",
	"diy help",
	"fix",
	"repair",
	"install",
	"replace",
	"mend",
	"restore",
	"maintain",
	"service",
	"diagnose",
	"troubleshoot",
	"resolve",
	"upgrade",
	"clean",
	"build",
	"convert",
	"renovate",
	"remodel",
	"paint",
	"decorate",
	"plaster",
	"wire",
	"plumb",
	"tile",
	"landscape",
	"garden",
	"guttering",
	"fascias",
	"soffits",
	"bargeboards",
	"chimney",
	"fireplace",
	"structural engineer",
	"damp proof course",
	"weather stripping",
	"re-aligning doors",
	"resealing windows",
	"appliance wiring",
	"security system",
	"smoke detectors",
	"carbon monoxide detectors",
	"burglar alarms",
	"fire alarms",
	"fire extinguishers",
	"emergency lighting",
	"asbestos",
}

// DefaultCorpus returns a copy of the built-in keyword list
func DefaultCorpus() []string {
	out := make([]string, len(defaultCorpus))
	copy(out, defaultCorpus)
	return out
}
