/*
Package dnsbench contains functionality for benchmarking the latency of public DNS providers.
Each provider is probed by a Prober, which resolves a fixed set of well-known domains against
the provider's IPv4 address and stores the average response time on the Provider. The Scheduler
probes a whole catalog of providers in bounded parallel chunks and returns the providers that
answered at least one probe, ranked from the fastest to the slowest.
*/
package dnsbench
