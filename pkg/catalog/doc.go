/*
Package catalog loads the DNS providers to benchmark. Providers are read from CSV files in the layout
published by public-dns.info or from YAML files, both can be stored locally or downloaded over HTTP.
Builtin returns a small catalog of well-known public resolvers that needs no download at all.
*/
package catalog
