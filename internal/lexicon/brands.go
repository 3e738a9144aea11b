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

// Brands maps brand tokens, as they appear in sender addresses and text,
// to display names.
var Brands = NewTable([]Entry{
	{"amazon", "Amazon"},
	{"flipkart", "Flipkart"},
	{"myntra", "Myntra"},
	{"ajio", "AJIO"},
	{"meesho", "Meesho"},
	{"snapdeal", "Snapdeal"},
	{"ebay", "eBay"},
	{"walmart", "Walmart"},
	{"target", "Target"},
	{"bestbuy", "Best Buy"},
	{"best buy", "Best Buy"},
	{"costco", "Costco"},
	{"swiggy", "Swiggy"},
	{"zomato", "Zomato"},
	{"ubereats", "Uber Eats"},
	{"uber eats", "Uber Eats"},
	{"doordash", "DoorDash"},
	{"dominos", "Domino's"},
	{"domino's", "Domino's"},
	{"pizzahut", "Pizza Hut"},
	{"pizza hut", "Pizza Hut"},
	{"starbucks", "Starbucks"},
	{"mcdonalds", "McDonald's"},
	{"mcdonald's", "McDonald's"},
	{"netflix", "Netflix"},
	{"spotify", "Spotify"},
	{"hotstar", "Hotstar"},
	{"disneyplus", "Disney+"},
	{"disney", "Disney+"},
	{"paytm", "Paytm"},
	{"phonepe", "PhonePe"},
	{"gpay", "Google Pay"},
	{"paypal", "PayPal"},
	{"nike", "Nike"},
	{"adidas", "Adidas"},
	{"puma", "Puma"},
	{"zara", "Zara"},
	{"hm.com", "H&M"},
	{"h&m", "H&M"},
	{"uniqlo", "Uniqlo"},
	{"shein", "SHEIN"},
	{"nykaa", "Nykaa"},
	{"bigbasket", "BigBasket"},
	{"blinkit", "Blinkit"},
	{"zepto", "Zepto"},
	{"makemytrip", "MakeMyTrip"},
	{"booking.com", "Booking.com"},
	{"expedia", "Expedia"},
	{"airbnb", "Airbnb"},
	{"uber", "Uber"},
	{"ola", "Ola"},
	{"apple", "Apple"},
	{"samsung", "Samsung"},
	{"oneplus", "OnePlus"},
	{"ikea", "IKEA"},
	{"sephora", "Sephora"},
	{"nordstromrack", "Nordstrom Rack"},
	{"nordstrom rack", "Nordstrom Rack"},
	{"nordstrom", "Nordstrom"},
	{"macys", "Macy's"},
	{"macy's", "Macy's"},
	{"jcpenney", "JCPenney"},
	{"kohls", "Kohl's"},
	{"kohl's", "Kohl's"},
	{"gap", "GAP"},
	{"oldnavy", "Old Navy"},
	{"old navy", "Old Navy"},
	{"lenskart", "Lenskart"},
	{"croma", "Croma"},
	{"reliance", "Reliance"},
	{"tata", "Tata"},
	{"ulta", "Ulta Beauty"},
	{"jcrew", "J.Crew"},
	{"j.crew", "J.Crew"},
	{"homedepot", "The Home Depot"},
	{"home depot", "The Home Depot"},
	{"wholefoods", "Whole Foods"},
	{"kroger", "Kroger"},
})

// MultiWordBrands spells out brand labels that are written as one word in
// a domain.
var MultiWordBrands = NewOrderedTable([]Entry{
	{"bestbuy", "Best Buy"},
	{"homedepot", "Home Depot"},
	{"wholefoods", "Whole Foods"},
	{"wholefoodsmarket", "Whole Foods Market"},
	{"dollartree", "Dollar Tree"},
	{"fiveguys", "Five Guys"},
	{"oldnavy", "Old Navy"},
	{"nordstromrack", "Nordstrom Rack"},
	{"jcrew", "J.Crew"},
})

// ImageBrands recognise a store in text read from an image. It includes
// the fragments OCR commonly leaves of stylised logos.
var ImageBrands = NewTable([]Entry{
	{"bloomingdale", "Bloomingdale's"},
	{"bloomingdales", "Bloomingdale's"},
	{"bloomingdale's", "Bloomingdale's"},
	{"mingdale", "Bloomingdale's"},
	{"olapm", "Bloomingdale's"},
	{"nordstrom", "Nordstrom"},
	{"macys", "Macy's"},
	{"macy's", "Macy's"},
	{"saks", "Saks Fifth Avenue"},
	{"neiman", "Neiman Marcus"},
	{"dillards", "Dillard's"},
	{"jcpenney", "JCPenney"},
	{"kohls", "Kohl's"},
	{"j.crew", "J.Crew"},
	{"jcrew", "J.Crew"},
	{"gap", "GAP"},
	{"old navy", "Old Navy"},
	{"banana republic", "Banana Republic"},
	{"zara", "ZARA"},
	{"h&m", "H&M"},
	{"uniqlo", "Uniqlo"},
	{"target", "Target"},
	{"walmart", "Walmart"},
	{"costco", "Costco"},
	{"best buy", "Best Buy"},
	{"bestbuy", "Best Buy"},
	{"sephora", "Sephora"},
	{"ulta", "Ulta Beauty"},
	{"sur la table", "Sur La Table"},
	{"williams sonoma", "Williams Sonoma"},
	{"bed bath", "Bed Bath & Beyond"},
	{"pottery barn", "Pottery Barn"},
	{"crate and barrel", "Crate and Barrel"},
	{"crate&barrel", "Crate and Barrel"},
	{"west elm", "West Elm"},
	{"cb2", "CB2"},
	{"home depot", "Home Depot"},
	{"lowes", "Lowe's"},
	{"lowe's", "Lowe's"},
	{"aveda", "Aveda"},
	{"anthropologie", "Anthropologie"},
	{"free people", "Free People"},
	{"urban outfitters", "Urban Outfitters"},
})

// AltTextBrands are brand fragments that mark an image's alt text as the
// store's own name.
var AltTextBrands = []string{"crew", "target", "walmart", "amazon", "costco", "sephora", "ulta", "kroger"}

// SenderHintKeywords are the keyword families that suggest a category from
// the sender alone. Families are checked in order.
var (
	CardHintKeywords = []string{
		"card", "amex", "chase", "citi", "capital", "discover", "visa",
		"mastercard", "bank", "credit", "rewards",
	}
	MembershipHintKeywords = []string{
		"member", "subscription", "prime", "plus", "premium", "club", "boost",
		"vip", "elite", "loyalty", "insider", "rewards",
	}
	RetailHintKeywords = []string{
		"shop", "store", "retail", "deals", "offers", "promo", "sale",
		"discount", "coupon", "market", "mall",
	}
)
