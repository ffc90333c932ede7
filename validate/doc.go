// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate checks and normalizes incoming payloads.

# Poll Creation

CreatePoll trims and markup-strips the title, description, and options,
then enforces limits (title 3-200, description <=500, 2-10 options of
1-100 characters each, case-sensitively unique):

	normalized, fieldErrs := validate.CreatePoll(req)
	if len(fieldErrs) > 0 {
		// 400 with {field, message} entries
	}

Validation is a pure function over its input; nothing here touches the
database, so invalid requests are rejected before any store access.

# Vote Payloads

OptionID verifies the textual UUID (version 1-5) of a vote target:

	if err := validate.OptionID(req.OptionID); err != nil {
		// 400 before any lookup
	}
*/
package validate
