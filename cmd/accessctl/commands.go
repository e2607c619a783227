package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/spf13/pflag"
)

type command struct {
	summary string
	run     func(ctx context.Context, c *accesssdk.Client, args []string) (any, error)
}

var commandOrder = []string{
	"generate", "validate", "redeem", "renew", "enqueue", "wait", "run-job", "jobs", "settings", "set-wait",
}

var commands = map[string]command{
	"generate": {
		summary: "mint an invitation token",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			hours := fs.Int("hours", 0, "token and membership duration in hours (default: service setting)")
			if err := fs.Parse(args); err != nil {
				return nil, err
			}
			return c.GenerateToken(ctx, accesssdk.GenerateTokenRequest{DurationHours: *hours})
		},
	},
	"validate": {
		summary: "show the status of a token",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			token, err := oneArg("validate", "TOKEN", args)
			if err != nil {
				return nil, err
			}
			return c.ValidateToken(ctx, token)
		},
	},
	"redeem": {
		summary: "redeem a token for a user",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			fs := pflag.NewFlagSet("redeem", pflag.ContinueOnError)
			token := fs.String("token", "", "token to redeem")
			user := fs.Int64("user", 0, "user id")
			if err := fs.Parse(args); err != nil {
				return nil, err
			}
			if *token == "" || *user == 0 {
				return nil, errors.New("redeem: --token and --user are required")
			}
			return c.RedeemToken(ctx, accesssdk.RedeemTokenRequest{Token: *token, UserID: *user})
		},
	},
	"renew": {
		summary: "extend a user's active membership",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			fs := pflag.NewFlagSet("renew", pflag.ContinueOnError)
			user := fs.Int64("user", 0, "user id")
			hours := fs.Int("hours", 0, "hours to add")
			if err := fs.Parse(args); err != nil {
				return nil, err
			}
			if *user == 0 {
				return nil, errors.New("renew: --user is required")
			}
			return c.RenewMembership(ctx, *user, accesssdk.RenewMembershipRequest{ExtraHours: *hours})
		},
	},
	"enqueue": {
		summary: "file a free access request",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			id, err := userArg("enqueue", args)
			if err != nil {
				return nil, err
			}
			return c.Enqueue(ctx, accesssdk.EnqueueRequest{UserID: id})
		},
	},
	"wait": {
		summary: "show a user's remaining wait",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			id, err := userArg("wait", args)
			if err != nil {
				return nil, err
			}
			return c.GetQueueStatus(ctx, id)
		},
	},
	"run-job": {
		summary: "run a scheduler job now",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			name, err := oneArg("run-job", "NAME", args)
			if err != nil {
				return nil, err
			}
			return c.RunJob(ctx, name)
		},
	},
	"jobs": {
		summary: "list scheduler jobs",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			return c.ListJobs(ctx)
		},
	},
	"settings": {
		summary: "show or change engine settings",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			fs := pflag.NewFlagSet("settings", pflag.ContinueOnError)
			wait := fs.Int("wait-minutes", 0, "wait time in minutes")
			hours := fs.Int("default-hours", 0, "default token duration in hours")
			length := fs.Int("token-length", 0, "generated token length")
			if err := fs.Parse(args); err != nil {
				return nil, err
			}

			var req accesssdk.UpdateSettingsRequest
			if fs.Changed("wait-minutes") {
				req.WaitTimeMinutes = wait
			}
			if fs.Changed("default-hours") {
				req.DefaultTokenDurationHours = hours
			}
			if fs.Changed("token-length") {
				req.TokenLength = length
			}
			if req == (accesssdk.UpdateSettingsRequest{}) {
				return c.GetSettings(ctx)
			}
			return c.UpdateSettings(ctx, req)
		},
	},
	"set-wait": {
		summary: "set the free access wait time in minutes",
		run: func(ctx context.Context, c *accesssdk.Client, args []string) (any, error) {
			raw, err := oneArg("set-wait", "MINUTES", args)
			if err != nil {
				return nil, err
			}
			minutes, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("set-wait: %q is not a number", raw)
			}
			return c.UpdateSettings(ctx, accesssdk.UpdateSettingsRequest{WaitTimeMinutes: &minutes})
		},
	},
}

func oneArg(cmd, name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: accessctl %s %s", cmd, name)
	}
	return args[0], nil
}

func userArg(cmd string, args []string) (int64, error) {
	raw, err := oneArg(cmd, "USER_ID", args)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a user id", cmd, raw)
	}
	return id, nil
}
