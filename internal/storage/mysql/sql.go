package mysql

// -----------------------------------------------------------------------------
// SUBSCRIPTIONS
// -----------------------------------------------------------------------------

const selectDueForExpirySQL = `
SELECT id, user_id, plan_type, status, start_date, end_date, auto_renew, stripe_subscription_id
FROM subscriptions
WHERE status = 'active'
  AND end_date IS NOT NULL
  AND end_date < ?
`

// Window bounds are inclusive; the 1-day window is a subset of the 7-day one.
const selectExpiringBetweenSQL = `
SELECT id, user_id, plan_type, status, start_date, end_date, auto_renew, stripe_subscription_id
FROM subscriptions
WHERE status = 'active'
  AND end_date IS NOT NULL
  AND end_date >= ?
  AND end_date <= ?
`

// markExpiredPrefix is completed with an IN (...) placeholder list. The
// status predicate keeps a concurrent admin cancel from being overwritten.
const markExpiredPrefix = `
UPDATE subscriptions SET status = 'expired', updated_at = CURRENT_TIMESTAMP
WHERE status = 'active' AND id IN `

const hasNotificationSQL = `
SELECT 1 FROM subscription_notifications
WHERE subscription_id = ? AND type = ?
LIMIT 1
`

// INSERT IGNORE + the unique key on (subscription_id, type) make the warning
// milestones at-most-once without a read-modify-write race.
const insertNotificationSQL = `
INSERT IGNORE INTO subscription_notifications
  (id, subscription_id, user_id, type, email_sent, created_at)
VALUES (?, ?, ?, ?, 0, ?)
`

const countPendingByTypeSQL = `
SELECT type, COUNT(*) FROM subscription_notifications
WHERE email_sent = 0
GROUP BY type
`

const selectPendingNotificationsSQL = `
SELECT id, subscription_id, user_id, type, email_sent, created_at
FROM subscription_notifications
WHERE email_sent = 0
ORDER BY created_at, id
LIMIT ?
`

const markNotificationSentSQL = `
UPDATE subscription_notifications SET email_sent = 1 WHERE id = ?
`

// -----------------------------------------------------------------------------
// HOTELS (admin back-office)
// -----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO hotels
  (id, owner_id, name, location, description, rating, price, amenities, features,
   is_discrete, status, admin_notes, approved_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectHotelSQL = `
SELECT id, owner_id, name, location, description, rating, price, amenities, features,
       is_discrete, status, admin_notes, approved_at, created_at, updated_at
FROM hotels
WHERE id = ?
`

const listHotelsSQL = `
SELECT id, owner_id, name, location, description, rating, price, amenities, features,
       is_discrete, status, admin_notes, approved_at, created_at, updated_at
FROM hotels
WHERE (? IS NULL OR status = ?)
ORDER BY created_at DESC, id
LIMIT ?
`

const updateHotelSQL = `
UPDATE hotels SET
  owner_id    = ?,
  name        = ?,
  location    = ?,
  description = ?,
  rating      = ?,
  price       = ?,
  amenities   = ?,
  features    = ?,
  is_discrete = ?,
  admin_notes = ?,
  updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

// approved_at is only stamped once; COALESCE keeps the first value.
const updateHotelStatusSQL = `
UPDATE hotels SET
  status      = ?,
  approved_at = COALESCE(approved_at, ?),
  updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteHotelSQL = `
DELETE FROM hotels WHERE id = ?
`

// -----------------------------------------------------------------------------
// USERS / AUDIT
// -----------------------------------------------------------------------------

const selectUserEmailSQL = `
SELECT email FROM users WHERE id = ?
`

const insertAuditSQL = `
INSERT INTO notification_audit
  (id, recipient, subject, priority, context, context_id, email_id, sent_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
