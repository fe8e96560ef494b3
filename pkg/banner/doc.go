// Package banner turns one HTML5 template banner into many populated copies.
//
// The package is organised along the pipeline stages:
//
//   - [ProbeSize] and [MatchPlaceholders] find the template images whose pixel
//     dimensions equal a reference creative. Those are the placeholders.
//   - [InjectClicktag] adds the ad.size meta tag, the clickTag variable and a
//     click-through anchor around the canvas.
//   - [Materialize] copies a pristine template and injects it once, producing
//     the master [Template] every output banner is cloned from.
//   - [PlanCategory] computes how many copies a category needs
//     (ceil(images / placeholders)) and [CategoryPlan.Create] clones them.
//   - [Distribute] assigns a category's images to placeholder slots
//     round-robin, wrapping back to the first image when the list runs out.
//   - [Combos] interleaves all categories into fixed-size combos for the
//     mixed output, dropping the remainder that cannot fill a whole combo.
//
// Every listing is sorted by file name, so the same inputs always produce the
// same output tree.
//
// # Reference images
//
// Placeholders are found by comparing against the first image (by name) of
// the category being planned; mixed mode uses the first image of the first
// non-empty category. All creatives are expected to share one size.
package banner
