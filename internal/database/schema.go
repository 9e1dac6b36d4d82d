package database

// Column names are camelCase so an existing deployment's tables are reused as-is.
var schema = []string{`
CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    openId VARCHAR(64) NOT NULL UNIQUE,
    name TEXT,
    email VARCHAR(320),
    loginMethod VARCHAR(64),
    role ENUM('user', 'admin') NOT NULL DEFAULT 'user',
    createdAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updatedAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    lastSignedIn TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, `
CREATE TABLE IF NOT EXISTS subscriptions (
    id INT AUTO_INCREMENT PRIMARY KEY,
    userId INT NOT NULL,
    plan ENUM('free', 'starter', 'pro', 'agency') NOT NULL DEFAULT 'free',
    generationsUsed INT NOT NULL DEFAULT 0,
    generationsLimit INT NOT NULL DEFAULT 3,
    stripeCustomerId VARCHAR(255),
    stripeSubscriptionId VARCHAR(255),
    status ENUM('active', 'canceled', 'past_due') NOT NULL DEFAULT 'active',
    currentPeriodStart TIMESTAMP NULL,
    currentPeriodEnd TIMESTAMP NULL,
    createdAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updatedAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    UNIQUE KEY uniq_subscription_user (userId)
)`, `
CREATE TABLE IF NOT EXISTS campaigns (
    id INT AUTO_INCREMENT PRIMARY KEY,
    userId INT NOT NULL,
    prospectName VARCHAR(255),
    prospectProfile VARCHAR(500),
    prospectBio TEXT,
    serviceDescription TEXT NOT NULL,
    outreachGoal ENUM('book_call', 'close_sale', 'partnership') NOT NULL,
    tone ENUM('direct', 'friendly', 'authority', 'premium') NOT NULL DEFAULT 'friendly',
    status ENUM('draft', 'completed', 'archived') NOT NULL DEFAULT 'draft',
    createdAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updatedAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    KEY idx_campaigns_user (userId)
)`, `
CREATE TABLE IF NOT EXISTS messages (
    id INT AUTO_INCREMENT PRIMARY KEY,
    campaignId INT NOT NULL,
    userId INT NOT NULL,
    hookLine TEXT NOT NULL,
    mainMessage TEXT NOT NULL,
    followUp1 TEXT,
    followUp2 TEXT,
    psychologyBreakdown TEXT,
    painPointIdentified TEXT,
    authorityAngle TEXT,
    curiosityTrigger TEXT,
    ctaStructure TEXT,
    createdAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    KEY idx_messages_campaign (campaignId),
    KEY idx_messages_user (userId)
)`,
}
