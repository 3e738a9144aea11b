// Copyright (c) 2026 John Earle
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexicon

// MembershipAliases renames captured program names that are known under a
// different display name. Matched exactly against the whole capture.
var MembershipAliases = NewOrderedTable([]Entry{
	{"ultamate rewards", "Ulta Beauty Ultamate Rewards"},
	{"ulta ultamate rewards", "Ulta Beauty Ultamate Rewards"},
	{"ulta rewards", "Ulta Beauty Ultamate Rewards"},
	{"sephora beauty insider", "Sephora Beauty Insider"},
	{"beauty insider", "Sephora Beauty Insider"},
	{"kroger boost+", "Kroger Boost+"},
	{"kroger boost plus", "Kroger Boost+"},
	{"bj's club+", "BJ's Club+"},
	{"bjs club+", "BJ's Club+"},
})

// Memberships maps program phrases to canonical membership names.
var Memberships = NewTable([]Entry{
	// banking
	{"bank of america preferred rewards platinum", "Bank of America Preferred Rewards Platinum"},
	{"bank of america preferred rewards gold", "Bank of America Preferred Rewards Gold"},
	{"bank of america preferred rewards", "Bank of America Preferred Rewards"},
	{"preferred rewards gold", "Bank of America Preferred Rewards Gold"},
	{"preferred rewards platinum", "Bank of America Preferred Rewards Platinum"},
	{"chase private client", "Chase Private Client"},
	{"chase sapphire banking", "Chase Sapphire Banking"},
	{"wells fargo premier", "Wells Fargo Premier"},
	{"citi priority", "Citi Priority"},
	{"capital one 360", "Capital One 360"},

	// warehouse clubs
	{"costco gold star", "Costco Gold Star Membership"},
	{"gold star membership", "Costco Gold Star Membership"},
	{"costco executive", "Costco Executive Membership"},
	{"executive membership", "Costco Executive Membership"},
	{"costco business", "Costco Business Membership"},
	{"costco", "Costco Membership"},
	{"sam's club plus", "Sam's Club Plus"},
	{"sams club plus", "Sam's Club Plus"},
	{"sam's club", "Sam's Club Membership"},
	{"sams club", "Sam's Club Membership"},
	{"bj's inner circle", "BJ's Inner Circle Membership"},
	{"bj's perks rewards", "BJ's Perks Rewards"},
	{"bj's club+", "BJ's Club+"},
	{"bj's club plus", "BJ's Club+"},
	{"bjs club+", "BJ's Club+"},
	{"bj's wholesale", "BJ's Club+"},
	{"bjs wholesale", "BJ's Club+"},
	{"bj's", "BJ's Club+"},

	// retail
	{"walmart+", "Walmart+"},
	{"walmart plus", "Walmart+"},
	{"amazon prime", "Amazon Prime"},
	{"prime membership", "Amazon Prime"},
	{"target circle 360", "Target Circle 360"},
	{"target circle", "Target Circle"},
	{"best buy totaltech", "Best Buy Totaltech"},
	{"best buy plus", "Best Buy Plus"},
	{"cvs carepass", "CVS CarePass"},
	{"walgreens mywalgreens", "myWalgreens+"},
	{"mywalgreens", "myWalgreens+"},
	{"rite aid wellness+", "Rite Aid Wellness+"},
	{"petco vital care", "Petco Vital Care"},
	{"petsmart treats", "PetSmart Treats Rewards"},
	{"chewy autoship", "Chewy Autoship"},
	{"sephora beauty insider", "Sephora Beauty Insider"},
	{"beauty insider", "Sephora Beauty Insider"},
	{"ultamate rewards", "Ulta Beauty Ultamate Rewards"},
	{"ulta ultamate rewards", "Ulta Beauty Ultamate Rewards"},
	{"ulta rewards", "Ulta Beauty Ultamate Rewards"},
	{"ulta beauty", "Ulta Beauty Ultamate Rewards"},
	{"nordstrom nordy club", "Nordstrom Nordy Club"},
	{"nordy club", "Nordstrom Nordy Club"},
	{"kohl's rewards", "Kohl's Rewards"},
	{"macy's star rewards", "Macy's Star Rewards"},
	{"rei co-op", "REI Co-op Membership"},
	{"dick's scorecard", "Dick's Scorecard"},
	{"nike membership", "Nike Membership"},
	{"adidas creators club", "Adidas Creators Club"},
	{"lululemon membership", "Lululemon Membership"},
	{"j.crew passport", "J.Crew Passport"},
	{"jcrew passport", "J.Crew Passport"},

	// grocery and delivery
	{"kroger boost+", "Kroger Boost+"},
	{"kroger boost plus", "Kroger Boost+"},
	{"kroger boost", "Kroger Boost+"},
	{"instacart+", "Instacart+"},
	{"instacart express", "Instacart Express"},
	{"shipt", "Shipt Membership"},
	{"freshly", "Freshly Subscription"},
	{"hello fresh", "HelloFresh"},
	{"hellofresh", "HelloFresh"},
	{"blue apron", "Blue Apron"},
	{"home chef", "Home Chef"},
	{"factor meals", "Factor Meals"},
	{"green chef", "Green Chef"},
	{"dashpass", "DoorDash DashPass"},
	{"uber one", "Uber One"},
	{"grubhub+", "Grubhub+"},

	// restaurants
	{"panera unlimited sip club", "Panera Unlimited Sip Club"},
	{"panera bread", "Panera Bread Rewards"},
	{"starbucks rewards", "Starbucks Rewards"},
	{"dunkin rewards", "Dunkin' Rewards"},
	{"chick-fil-a one", "Chick-fil-A One"},
	{"chipotle rewards", "Chipotle Rewards"},
	{"taco bell rewards", "Taco Bell Rewards"},
	{"mcdonald's rewards", "McDonald's Rewards"},
	{"wendy's rewards", "Wendy's Rewards"},

	// streaming and media
	{"netflix premium", "Netflix Premium"},
	{"netflix standard", "Netflix Standard"},
	{"netflix basic", "Netflix Basic"},
	{"netflix", "Netflix"},
	{"disney+", "Disney+"},
	{"disney plus", "Disney+"},
	{"hulu", "Hulu"},
	{"hbo max", "HBO Max"},
	{"max", "Max (HBO)"},
	{"peacock premium", "Peacock Premium"},
	{"peacock", "Peacock"},
	{"paramount+", "Paramount+"},
	{"paramount plus", "Paramount+"},
	{"apple tv+", "Apple TV+"},
	{"discovery+", "Discovery+"},
	{"espn+", "ESPN+"},
	{"youtube premium", "YouTube Premium"},
	{"youtube tv", "YouTube TV"},
	{"sling tv", "Sling TV"},
	{"fubo tv", "FuboTV"},
	{"philo", "Philo"},
	{"crunchyroll", "Crunchyroll"},
	{"funimation", "Funimation"},
	{"spotify premium", "Spotify Premium"},
	{"spotify", "Spotify"},
	{"apple music", "Apple Music"},
	{"amazon music unlimited", "Amazon Music Unlimited"},
	{"tidal", "TIDAL"},
	{"pandora plus", "Pandora Plus"},
	{"pandora premium", "Pandora Premium"},
	{"sirius xm", "SiriusXM"},
	{"siriusxm", "SiriusXM"},
	{"audible premium", "Audible Premium Plus"},
	{"audible", "Audible"},
	{"kindle unlimited", "Kindle Unlimited"},
	{"scribd", "Scribd"},
	{"kobo plus", "Kobo Plus"},

	// fitness
	{"planet fitness", "Planet Fitness"},
	{"la fitness", "LA Fitness"},
	{"24 hour fitness", "24 Hour Fitness"},
	{"equinox", "Equinox"},
	{"orangetheory", "Orangetheory Fitness"},
	{"crossfit", "CrossFit"},
	{"peloton", "Peloton"},
	{"apple fitness+", "Apple Fitness+"},
	{"fitbit premium", "Fitbit Premium"},
	{"noom", "Noom"},
	{"weight watchers", "WW (Weight Watchers)"},

	// gaming
	{"xbox game pass", "Xbox Game Pass"},
	{"xbox live gold", "Xbox Live Gold"},
	{"playstation plus", "PlayStation Plus"},
	{"ps plus", "PlayStation Plus"},
	{"nintendo switch online", "Nintendo Switch Online"},
	{"ea play", "EA Play"},
	{"ubisoft+", "Ubisoft+"},
	{"geforce now", "GeForce NOW"},

	// travel
	{"delta skymiles", "Delta SkyMiles"},
	{"american aadvantage", "American AAdvantage"},
	{"united mileageplus", "United MileagePlus"},
	{"southwest rapid rewards", "Southwest Rapid Rewards"},
	{"jetblue trueblue", "JetBlue TrueBlue"},
	{"alaska mileage plan", "Alaska Mileage Plan"},
	{"marriott bonvoy", "Marriott Bonvoy"},
	{"hilton honors", "Hilton Honors"},
	{"ihg one rewards", "IHG One Rewards"},
	{"world of hyatt", "World of Hyatt"},
	{"wyndham rewards", "Wyndham Rewards"},
	{"choice privileges", "Choice Privileges"},
	{"hertz gold plus", "Hertz Gold Plus Rewards"},
	{"national emerald club", "National Emerald Club"},
	{"enterprise plus", "Enterprise Plus"},
	{"avis preferred", "Avis Preferred"},
	{"tsa precheck", "TSA PreCheck"},
	{"global entry", "Global Entry"},
	{"clear", "CLEAR"},
	{"priority pass", "Priority Pass"},

	// software
	{"microsoft 365", "Microsoft 365"},
	{"office 365", "Microsoft 365"},
	{"adobe creative cloud", "Adobe Creative Cloud"},
	{"google one", "Google One"},
	{"icloud+", "iCloud+"},
	{"dropbox plus", "Dropbox Plus"},
	{"evernote", "Evernote"},
	{"1password", "1Password"},
	{"lastpass", "LastPass"},
	{"nordvpn", "NordVPN"},
	{"expressvpn", "ExpressVPN"},

	// other
	{"aaa", "AAA Membership"},
	{"onstar", "OnStar"},
})

// InvalidMembershipCaptures are generic phrases rejected as program names.
var InvalidMembershipCaptures = []string{
	"membership", "membership details", "your membership", "active membership",
	"tier", "gold tier", "platinum tier", "exclusive to us", "us members", "us shoppers",
}
