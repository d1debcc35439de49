package main

import (
	"github.com/folbricht/adrules"
)

// Local filenames for the well-known lists. Sources not listed here are named
// after the last element of their URL path.
var defaultFriendlyNames = adrules.FriendlyNames{
	"https://easylist-downloads.adblockplus.org/easylist.txt":                                                  "EasyList.txt",
	"https://easylist-downloads.adblockplus.org/easylistchina.txt":                                             "EasyList_China.txt",
	"https://easylist-downloads.adblockplus.org/easyprivacy.txt":                                               "EasyPrivacy.txt",
	"https://hblock.molinero.dev/hosts_adblock.txt":                                                            "HBlock_AdBlock.txt",
	"https://phishing.army/download/phishing_army_blocklist.txt":                                               "Phishing_Army.txt",
	"https://raw.githubusercontent.com/AdguardTeam/FiltersRegistry/master/filters/filter_2_Base/filter.txt":        "AdGuard_Base.txt",
	"https://raw.githubusercontent.com/AdguardTeam/FiltersRegistry/master/filters/filter_3_Spyware/filter.txt":     "AdGuard_Spyware.txt",
	"https://raw.githubusercontent.com/AdguardTeam/FiltersRegistry/master/filters/filter_11_Mobile/filter.txt":     "AdGuard_Mobile.txt",
	"https://raw.githubusercontent.com/AdguardTeam/FiltersRegistry/master/filters/filter_14_Annoyances/filter.txt": "AdGuard_Annoyances.txt",
	"https://raw.githubusercontent.com/AdguardTeam/FiltersRegistry/master/filters/filter_15_DnsFilter/filter.txt":  "AdGuard_DNS.txt",
	"https://raw.githubusercontent.com/AdguardTeam/FiltersRegistry/master/filters/filter_224_Chinese/filter.txt":   "AdGuard_Chinese.txt",
	"https://raw.githubusercontent.com/badmojr/1Hosts/master/Pro/adblock.txt":                                      "1Hosts_ADBlock_Pro.txt",
	"https://raw.githubusercontent.com/cjx82630/cjxlist/master/cjx-annoyance.txt":                                  "CJX_Annoyance.txt",
	"https://raw.githubusercontent.com/damengzhu/banad/main/dnslist.txt":                                           "BanAD_DNS.txt",
	"https://raw.githubusercontent.com/damengzhu/banad/main/jiekouAD.txt":                                          "BanAD_JiekouAD.txt",
	"https://raw.githubusercontent.com/FiltersHeroes/KADhosts/master/KADhosts.txt":                                 "KADhosts.txt",
	"https://raw.githubusercontent.com/hagezi/dns-blocklists/main/adblock/pro.txt":                                 "Hagezi_ADBlock_Pro.txt",
	"https://raw.githubusercontent.com/Loyalsoldier/v2ray-rules-dat/release/reject-list.txt":                        "Loyalsoldier_Reject_List.txt",
	"https://raw.githubusercontent.com/StevenBlack/hosts/master/alternates/fakenews-gambling/hosts":                 "StevenBlack_Fakenews_Gambling.txt",
	"https://raw.githubusercontent.com/TG-Twilight/AWAvenue-Ads-Rule/main/AWAvenue-Ads-Rule.txt":                   "AWAvenue_Ads_Rule.txt",
	"https://raw.githubusercontent.com/uBlockOrigin/uAssets/master/filters/filters.txt":                            "uBlock_Filters.txt",
	"https://raw.githubusercontent.com/xinggsf/Adblock-Plus-Rule/master/mv.txt":                                    "ChengFeng_MV.txt",
	"https://raw.githubusercontent.com/xinggsf/Adblock-Plus-Rule/master/rule.txt":                                  "ChengFeng_Rule.txt",
	"https://someonewhocares.org/hosts":                                                                            "DanPollock_Hosts.txt",
}
