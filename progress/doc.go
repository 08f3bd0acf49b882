// Package progress provides neighborhood.Observer implementations.
//
// What
//
//	Logger reports every N clustered sequences through zap and summarizes
//	the run with Done. Metrics counts visited sequences and closed
//	neighborhoods and records a neighborhood size histogram in a
//	Prometheus registry. Multi fans one Gather out to several observers.
//
// Why
//
//	Clustering a large library can take minutes; hooks keep the progress
//	reporting out of the traversal itself.
package progress
