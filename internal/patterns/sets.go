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

package patterns

// Membership recognises subscription, loyalty tier and welcome language.
var Membership = NewSet("membership",
	// tier names followed by a colon: "Kroger Boost+:", "myWalgreens+:"
	`\b[\w\s']+\s?(club\+|boost\+|plus\+|\+|premium|pro|rewards|insider|member|circle|perks|benefits|advantage|privileges):\s`,
	`\b(club\+|boost\+|rewards|insider)\s+members?\b`,

	// milestones
	`\b(membership|member|subscriber|account)\s+(anniversary|birthday)\b`,
	`\b(anniversary|birthday)\b.*\b(membership|member|rewards|program|account|passport|insider|perks)\b`,
	`\byour\s+[\w\s+\-'.]+\s+anniversary\b`,
	`\banniversary\b`,
	`\bhappy\s+birthday\b`,
	`\bcelebrating\s+(your|you)\b`,

	// core terms
	`\bmembership\b`,
	`\bsubscription\b`,
	`\bmember\s+(benefits|perks|rewards|exclusive|since|portal|access|account|card|number|id)\b`,
	`\byour\s+[\w\s+\-']+\s+(membership|subscription|member|account)\b`,
	`\bwelcome\s+to\s+[\w\s+\-']+[!\s,]`,

	// status and expiry
	`\b(membership|subscription)\s+(?:ending|expir(?:es?|ing)|renew(?:al|ing)?)\b`,
	`\b(membership|subscription)\s+(?:status|details|information|summary)\b`,

	// activation
	`\b(activated|active|confirmed|enrolled|registered|started|begins?)\b.*\b(membership|subscription|member|account)\b`,
	`\b(membership|subscription|member|account)\b.*\b(activated|active|confirmed|enrolled|started|is\s+now|has\s+started)\b`,

	// warehouse clubs
	`\b(warehouse|club|plus|prime)\s+(membership|member|account)\b`,
	`\b(member|membership)\s+(card|number|id|portal|dashboard)\b`,

	// trials and renewals
	`\b(trial|renewal|renew)\b.*\b(started|begins?|ends?|expir(es?|ing|ation)|period|notice|reminder)\b`,
	`\bfree\s*(trial|membership|subscription)\b`,
	`\bauto[-\s]?renew(al|ed|s)?\b`,

	// billing
	`\b(monthly|annual|yearly)\s*(plan|subscription|membership|fee|payment|billing)\b`,
	`\brecurring\s*(charge|payment|billing|subscription|fee)\b`,
	`\bsubscription\s*(fee|dues|payment|invoice|billing|charge)\b`,
	`\bmembership\s*(fee|dues|payment|invoice|billing|charge)\b`,

	// tiers
	`\b(plus|premium|pro|elite|gold|platinum|executive|star|select|preferred|priority|boost)\s+(membership|subscription|member|account|program)\b`,
	`\b(basic|standard|advanced|essentials?)\s+(membership|subscription|member|plan|tier)\b`,
	`\b[\w']+\s*(club\+|boost\+)`,
	`\b(club\+|boost\+|club\s+plus|boost\s+plus)`,

	// access and benefits
	`\b(unlock|unlocked|enjoy|access|get)\b.*\b(membership|subscription|member|benefits|perks|privileges)\b`,
	`\b(membership|subscription)\b.*\b(unlock|unlocked|benefits|perks|privileges|exclusive|rewards)\b`,
	`\bjoin(ed)?\s+(our\s+)?[\w\s+\-']+\s+(membership|program|club|family|community)\b`,
	`\bexclusive\s*(member|membership|subscriber)\s*(access|benefits|perks|pricing|offers?|deals?)\b`,

	// services
	`\b(streaming|delivery|shipping|rewards?|loyalty|points)\s*(membership|subscription|service|program|plan)\b`,
	`\b(gym|fitness|health|wellness)\s*(membership|subscription|plan)\b`,
	`\b(student|family|business|corporate|individual)\s*(membership|subscription|plan)\b`,

	// welcome and confirmation
	`\bwelcome\s+(to\s+)?(our\s+)?[\w\s+\-']+\b`,
	`\bthank\s+you\s+for\s+(joining|subscribing|signing\s+up)\b`,
	`\byou'?re\s+(now\s+)?a\s+(member|subscriber)\b`,
	`\byour\s+[\w\s+\-']+\s+(account|profile)\s+is\s+(ready|active|set\s+up)\b`,

	// member numbers
	`\bmember(ship)?\s*(number|id|#)\s*:?\s*\d+\b`,
	`\baccount\s*(number|id|#)\s*:?\s*\d+\b.*\b(membership|subscription|member)\b`,
)

// Offer recognises credit card and issuer rewards language.
var Offer = NewSet("offer",
	`\b(credit|debit|charge|prepaid)\s*card\s*(benefits|rewards|activated|active|approved|application|member)\b`,
	`\bcard\s*(benefits|rewards|activated|active|approved|application|member|perks|privilege)\b`,
	`\byour\s+[\w\s]+\s+card\s+(is\s+)?(now\s+)?(ready|active|activated|approved|issued)\b`,

	`\bwelcome[!\s]+.*\bcard\b`,
	`\byour\s+[\w\s]+\s+card\b`,
	`\bcongratulations\b.*\bcard\b`,
	`\bcongratulations\b.*\b(approval|approved)\b`,

	// networks
	`\b(visa|mastercard|american\s*express|amex|discover|diners|jcb|unionpay)\s*(card|benefits|rewards|signature|infinite|world|elite)?\b`,

	`\bcard\s*member\s*(benefits|rewards|exclusive|perks|offers|privileges)\b`,
	`\bcardmember\b`,
	`\bcard\s*holder\b`,

	// points and miles
	`\brewards?\s*(card|program|points|activated|active|benefits|earned|balance)\b`,
	`\bpoints\s*(earned|balance|card|rewards|program|redemption|transfer)\b`,
	`\bcash\s*back\s*(card|rewards|earned|program)?\b`,
	`\bmiles\s*(card|rewards|earned|program|balance|transfer)\b`,
	`\bfrequent\s*flyer\s*(card|program|miles)\b`,
	`\bairline\s*(miles|rewards|card|partner)\b`,
	`\btravel\s*(card|rewards|benefits|credits)\b`,

	// activation
	`\bwelcome\s*(bonus|offer|kit|package)\b.*\bcard\b`,
	`\bcard\s*(application|approval|activation|welcome)\b`,
	`\bapproved\b.*\bcard\b`,
	`\bactivate\s+your\s+(new\s+)?card\b`,

	// tiers
	`\b(platinum|gold|silver|premier|signature|infinite|world|elite|prestige|reserve)\s*(card|membership|status)\b`,
	`\b(business|corporate|commercial)\s*card\b`,
	`\bco[-\s]?brand(ed)?\s*card\b`,
	`\bstore\s*card\b`,

	// card benefits
	`\bcard\s+benefit(s)?\s+(are\s+)?(now\s+)?(active|activated|available|unlocked)\b`,
	`\binsurance\s*coverage\b.*\bcard\b`,
	`\btravel\s*insurance\b`,
	`\bpurchase\s*protection\b`,
	`\bextended\s*warranty\b`,
	`\bconcierge\s*service\b`,
	`\blounge\s*access\b`,
	`\bpriority\s*(pass|boarding|access)\b`,
)

// Coupon recognises discount, sale and deal language.
var Coupon = NewSet("coupon",
	// percentages
	`\b\d+%\s*off\b`,
	`\bup\s*to\s*\d+%\s*off\b`,
	`\bflat\s*\d+%?\s*(off|discount)\b`,
	`\bextra\s*\d+%\s*off\b`,
	`\badditional\s*\d+%\s*off\b`,

	// currency
	`\bsave\s*(up\s*to\s*)?\$?₹?€?£?¥?\d+`,
	`\bget\s*\$?₹?€?£?¥?\d+\s*off\b`,
	`\$?₹?€?£?¥?\d+\s*off\b`,
	`\$?₹?€?£?¥?\d+\s*(discount|savings|rebate)\b`,

	// codes
	`\bpromo\s*(code|offer)\b`,
	`\bcoupon\s*code\b`,
	`\bdiscount\s*code\b`,
	`\buse\s*code\b`,
	`\bapply\s*code\b`,
	`\benter\s*code\b`,
	`\bcode\s*:\s*\w+`,
	`\bredeem\s*(code|coupon|offer|points)\b`,
	`\bvoucher\s*code\b`,

	// free offers
	`\bfree\s*(shipping|delivery|gift|sample|trial|returns?|item|product)\b`,
	`\bcomplimentary\s*(shipping|gift|upgrade)\b`,
	`\bno\s*(shipping|delivery)\s*(fee|cost|charge)\b`,

	// multi-buy
	`\bbuy\s*\d+\s*get\s*\d+\b`,
	`\bbogo\b`,
	`\bbuy\s*one\s*get\s*one\b`,
	`\b\d+\s*for\s*\$?₹?€?£?\d+\b`,

	// sales
	`\bsale\s*(now|today|ends|starts?|event|online)\b`,
	`\bflash\s*sale\b`,
	`\bclearance\s*sale\b`,
	`\bliquidation\s*sale\b`,
	`\bwarehouse\s*sale\b`,
	`\bgarage\s*sale\b`,
	`\bblowout\s*sale\b`,
	`\bseasonal\s*sale\b`,
	`\bend\s*of\s*season\s*sale\b`,
	`\bpre[-\s]?season\s*sale\b`,
	`\bmid[-\s]?season\s*sale\b`,

	// urgency
	`\blimited\s*time\s*(offer|deal|sale|only|discount)\b`,
	`\btoday\s*only\b`,
	`\bweekend\s*(sale|offer|deal|special)\b`,
	`\b(24|48|72)\s*hours?\s*(sale|flash|deal)\b`,
	`\bends?\s*(today|tonight|tomorrow|soon|this\s+week|in\s*\d+)\b`,
	`\bhurry!?\s*(limited|offer|ends|stock|time)\b`,
	`\blast\s*chance\b`,
	`\bfinal\s*(hours?|days?|call)\b`,
	`\bdon'?t\s*miss\s*(this|out|it)\b`,
	`\bwhile\s*(supplies|stocks?)\s*last\b`,
	`\bact\s*now\b`,
	`\bexpir(es?|ing|ation)\s*(soon|today|tomorrow)\b`,

	// exclusives
	`\bexclusive\s*(offer|deal|discount|sale|access|price|savings)\b`,
	`\bspecial\s*(offer|deal|discount|price|promotion|savings)\b`,
	`\bmember\s*(exclusive|only|special|pricing|discount)\b`,
	`\bvip\s*(offer|sale|discount|access|pricing)\b`,
	`\bearly\s*(access|bird|shopper)\b`,
	`\bprivate\s*sale\b`,
	`\binvite[-\s]?only\b`,

	// holidays
	`\bblack\s*friday\b`,
	`\bcyber\s*monday\b`,
	`\bprime\s*day\b`,
	`\bholiday\s*(sale|offer|deal|savings|event)\b`,
	`\bchristmas\s*(sale|offer|deals?)\b`,
	`\bnew\s*year\s*(sale|offer|deals?)\b`,
	`\bvalentine'?s?\s*(sale|deals?)\b`,
	`\bmother'?s?\s*day\s*(sale|deals?)\b`,
	`\bfather'?s?\s*day\s*(sale|deals?)\b`,
	`\bmemorial\s*day\s*(sale|deals?)\b`,
	`\blabor\s*day\s*(sale|deals?)\b`,
	`\bback\s*to\s*school\b`,
	`\bsummer\s*(sale|savings|clearance)\b`,
	`\bwinter\s*(sale|savings|clearance)\b`,
	`\bspring\s*(sale|savings)\b`,
	`\bfall\s*(sale|savings)\b`,

	// cash back
	`\bcashback\b`,
	`\bcash\s*back\b`,
	`\brewards?\s*(points|dollars|earnings)\b`,
	`\bearn\s*\d+[x%]?\s*(points|rewards|cashback)\b`,
	`\bdouble\s*(points|rewards|cashback)\b`,
	`\btriple\s*(points|rewards)\b`,

	// calls to action
	`\bshop\s*now\s*(and|to|&)?\s*(save|get)\b`,
	`\border\s*now\s*(and|to|&)?\s*(get|save)\b`,
	`\bbuy\s*now\s*(and|to|&)?\s*(save|get)\b`,
	`\bclick\s*(here|now)\s*to\s*save\b`,
	`\bsave\s*(big|more|today|now)\b`,
	`\bhuge\s*(savings|discounts?)\b`,
	`\bmassive\s*(savings|discounts?|sale)\b`,
	`\bunbeatable\s*(price|deal|offer)\b`,
	`\blowest\s*price\b`,
	`\bbest\s*(price|deal|offer)\b`,
	`\bprice\s*drop\b`,
	`\bmark(ed)?\s*down\b`,
)

// GiftCard recognises gift card, certificate and store credit language.
var GiftCard = NewSet("giftcard",
	`\bgift\s*card\b`,
	`\be[-\s]?gift\s*card\b`,
	`\bgift\s*certificate\b`,
	`\bdigital\s*gift\s*card\b`,
	`\bvirtual\s*gift\s*card\b`,
	`\belectronic\s*gift\s*card\b`,

	`\bgift\s*card\s*(sent|delivered|received|ready|activated)\b`,
	`\breceived\s*a\s*gift\s*card\b`,
	`\byour\s*gift\s*card\b`,
	`\bredeem\s*(your\s*)?gift\s*card\b`,
	`\bclaim\s*(your\s*)?gift\s*card\b`,

	`\bcard\s*number\s*:?\s*[\d\s-]+\b`,
	`\bpin\s*:?\s*\d+\b`,
	`\bcard\s*value\s*:?\s*[$₹€£¥]?\d+`,
	`\bgift\s*card\s*balance\b`,
	`\bgift\s*card\s*code\b`,

	`\bstore\s*credit\b`,
	`\baccount\s*credit\b`,
)

// Order recognises order confirmation, shipping and delivery language.
// Receipts quote totals that would otherwise read as discounts.
var Order = NewSet("order",
	`\border\s+(confirmation|confirmed|received|placed)\b`,
	`\bwe\s+(received|got)\s+(your\s+)?order\b`,
	`\byour\s+order\s+(has\s+been|is|was)\s+(received|confirmed|placed|processing)\b`,
	`\bthank\s+you\s+for\s+(your\s+)?order\b`,
	`\border\s+(number|#|id)\s*:?\s*[A-Z0-9-]+\b`,

	`\b(shipped|shipping|delivery|delivered|dispatched)\s+(confirmation|notification|update|status)\b`,
	`\byour\s+(order|package|item)\s+(has\s+)?(shipped|been\s+shipped|is\s+on\s+the\s+way)\b`,
	`\btracking\s+(number|#|id|information|details)\b`,
	`\bdelivery\s+(date|time|estimate|scheduled)\b`,
	`\bout\s+for\s+delivery\b`,

	`\border\s+status\b`,
	`\bprocessing\s+your\s+order\b`,
	`\bpreparing\s+(your\s+)?(order|shipment)\b`,
)
