// Package maintenance runs background housekeeping on a cron schedule.
package maintenance
