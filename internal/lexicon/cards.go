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

// CardIssuers maps issuer and product phrases to canonical card names.
var CardIssuers = NewTable([]Entry{
	// networks
	{"american express", "American Express Card"},
	{"amex", "American Express Card"},
	{"visa signature", "Visa Signature Card"},
	{"visa infinite", "Visa Infinite Card"},
	{"mastercard world elite", "Mastercard World Elite Card"},
	{"mastercard world", "Mastercard World Card"},
	{"discover it", "Discover it Card"},

	// chase
	{"chase sapphire reserve", "Chase Sapphire Reserve"},
	{"chase sapphire preferred", "Chase Sapphire Preferred"},
	{"chase sapphire", "Chase Sapphire Card"},
	{"chase freedom unlimited", "Chase Freedom Unlimited"},
	{"chase freedom flex", "Chase Freedom Flex"},
	{"chase freedom", "Chase Freedom Card"},
	{"chase slate", "Chase Slate Card"},
	{"chase ink business", "Chase Ink Business Card"},
	{"chase ink", "Chase Ink Card"},
	{"amazon prime rewards visa", "Amazon Prime Rewards Visa"},
	{"amazon rewards visa", "Amazon Rewards Visa"},
	{"united club infinite", "United Club Infinite Card"},
	{"united explorer", "United Explorer Card"},
	{"southwest rapid rewards", "Southwest Rapid Rewards Card"},
	{"southwest priority", "Southwest Priority Card"},
	{"marriott bonvoy boundless", "Marriott Bonvoy Boundless"},
	{"marriott bonvoy bold", "Marriott Bonvoy Bold"},
	{"ihg rewards", "IHG Rewards Card"},
	{"world of hyatt", "World of Hyatt Card"},
	{"aeroplan", "Aeroplan Card"},
	{"disney visa", "Disney Visa Card"},
	{"starbucks rewards visa", "Starbucks Rewards Visa"},

	// american express
	{"platinum card", "American Express Platinum Card"},
	{"amex platinum", "American Express Platinum Card"},
	{"amex gold", "American Express Gold Card"},
	{"gold card", "American Express Gold Card"},
	{"amex green", "American Express Green Card"},
	{"blue cash preferred", "Blue Cash Preferred Card"},
	{"blue cash everyday", "Blue Cash Everyday Card"},
	{"amex everyday", "Amex EveryDay Card"},
	{"hilton honors amex", "Hilton Honors American Express"},
	{"hilton honors aspire", "Hilton Honors Aspire Card"},
	{"hilton honors surpass", "Hilton Honors Surpass Card"},
	{"marriott bonvoy amex", "Marriott Bonvoy American Express"},
	{"delta skymiles gold", "Delta SkyMiles Gold Card"},
	{"delta skymiles platinum", "Delta SkyMiles Platinum Card"},
	{"delta skymiles reserve", "Delta SkyMiles Reserve Card"},
	{"delta skymiles blue", "Delta SkyMiles Blue Card"},
	{"delta skymiles", "Delta SkyMiles Card"},
	{"amex business gold", "Amex Business Gold Card"},
	{"amex business platinum", "Amex Business Platinum Card"},

	// capital one
	{"capital one venture x", "Capital One Venture X"},
	{"capital one ventureone", "Capital One VentureOne"},
	{"capital one venture", "Capital One Venture Card"},
	{"capital one quicksilver", "Capital One Quicksilver"},
	{"capital one savorone", "Capital One SavorOne"},
	{"capital one savor", "Capital One Savor"},
	{"capital one spark", "Capital One Spark Business"},
	{"capital one platinum", "Capital One Platinum Card"},
	{"capital one", "Capital One Card"},

	// citi
	{"citi double cash", "Citi Double Cash Card"},
	{"citi premier", "Citi Premier Card"},
	{"citi custom cash", "Citi Custom Cash Card"},
	{"citi diamond preferred", "Citi Diamond Preferred"},
	{"citi rewards+", "Citi Rewards+ Card"},
	{"citi simplicity", "Citi Simplicity Card"},
	{"costco anywhere visa", "Costco Anywhere Visa"},
	{"at&t access card", "AT&T Access Card"},
	{"aadvantage platinum", "AAdvantage Platinum Card"},
	{"aadvantage executive", "AAdvantage Executive Card"},
	{"citi", "Citi Card"},

	// bank of america
	{"bank of america premium rewards", "Bank of America Premium Rewards"},
	{"bank of america cash rewards", "Bank of America Cash Rewards"},
	{"bank of america travel rewards", "Bank of America Travel Rewards"},
	{"bank of america customized cash", "Bank of America Customized Cash"},
	{"alaska airlines visa", "Alaska Airlines Visa"},
	{"bank of america", "Bank of America Card"},

	// wells fargo
	{"wells fargo active cash", "Wells Fargo Active Cash"},
	{"wells fargo autograph", "Wells Fargo Autograph"},
	{"wells fargo reflect", "Wells Fargo Reflect"},
	{"wells fargo platinum", "Wells Fargo Platinum Card"},
	{"bilt rewards", "Bilt Rewards Card"},
	{"wells fargo", "Wells Fargo Card"},

	// u.s. bank
	{"us bank altitude reserve", "U.S. Bank Altitude Reserve"},
	{"us bank altitude connect", "U.S. Bank Altitude Connect"},
	{"us bank altitude go", "U.S. Bank Altitude Go"},
	{"us bank cash+", "U.S. Bank Cash+ Card"},
	{"us bank", "U.S. Bank Card"},

	// discover
	{"discover it chrome", "Discover it Chrome"},
	{"discover it miles", "Discover it Miles"},
	{"discover it student", "Discover it Student"},
	{"discover it secured", "Discover it Secured"},
	{"discover", "Discover Card"},

	// store cards
	{"amazon store card", "Amazon Store Card"},
	{"walmart rewards card", "Walmart Rewards Card"},
	{"target redcard", "Target REDcard"},
	{"sam's club mastercard", "Sam's Club Mastercard"},
	{"lowes advantage", "Lowe's Advantage Card"},
	{"home depot credit", "Home Depot Credit Card"},
	{"best buy credit", "Best Buy Credit Card"},
	{"apple card", "Apple Card"},
	{"paypal cashback", "PayPal Cashback Mastercard"},
	{"venmo credit card", "Venmo Credit Card"},

	// credit unions
	{"navy federal", "Navy Federal Card"},
	{"penfed", "PenFed Card"},
	{"usaa", "USAA Card"},
	{"alliant", "Alliant Card"},

	// fintech
	{"sofi credit card", "SoFi Credit Card"},
	{"upgrade card", "Upgrade Card"},
	{"petal card", "Petal Card"},
	{"chime credit builder", "Chime Credit Builder"},

	// barclays
	{"barclays arrival", "Barclays Arrival Card"},
	{"jetblue card", "JetBlue Card"},
	{"jetblue plus", "JetBlue Plus Card"},
	{"wyndham rewards", "Wyndham Rewards Card"},
	{"frontier airlines", "Frontier Airlines Card"},
	{"hawaiian airlines", "Hawaiian Airlines Card"},
	{"barclays", "Barclays Card"},
})

// CardGenericCaptures are phrases a card-name capture must not equal.
var CardGenericCaptures = []string{"your new", "new us", "us cardmember", "the new"}
