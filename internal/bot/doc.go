// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

/*
Package bot implements the conversation with a user.

A conversation has two steps. The user sends an image, which is scored into
a mood and stored as a MoodDetected session. The user then picks either
"artist" (and names some favorite artists) or "surprise", the matching
recommendation plan runs, the results are pushed and the session is
deleted.

Decide is the pure half: given the stored session and an inbound Event it
returns a Decision. Machine.Handle is the effectful half that loads state,
calls Decide and carries the Decision out against the injected
collaborators.

Delivery rules:
  - The first message for an event uses its reply token.
  - Every later message for the same event is pushed.
  - Vision, image download and catalog failures end in one apology message.
  - Reply and push failures are returned to the caller and not retried.

Expected conditions (asking for recommendations before sending an image, an
empty artist list) produce a guidance reply and leave the session as it was.
*/
package bot
